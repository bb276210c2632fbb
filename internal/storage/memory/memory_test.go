package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikhailRaia/shortlink/internal/generator"
	"github.com/MikhailRaia/shortlink/internal/metrics"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

// scriptedGenerator hands out a fixed sequence of identifiers and then
// repeats the last one forever.
type scriptedGenerator struct {
	mu      sync.Mutex
	ids     []string
	next    int
	lengths []int
}

func (g *scriptedGenerator) New() string {
	return g.NewWithLength(g.Length())
}

func (g *scriptedGenerator) NewWithLength(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lengths = append(g.lengths, length)
	id := g.ids[len(g.ids)-1]
	if g.next < len(g.ids) {
		id = g.ids[g.next]
		g.next++
	}
	return id
}

func (g *scriptedGenerator) Length() int {
	return 6
}

func newTestStorage() *Storage {
	return NewStorage(generator.NewDefault(), DefaultConfig())
}

func TestStorage_CreateAndResolve(t *testing.T) {
	s := newTestStorage()
	target := "https://example.com/page"

	id, err := s.Create(target)
	require.NoError(t, err)

	assert.Len(t, id, generator.DefaultLength)
	for _, c := range id {
		assert.True(t, strings.ContainsRune(generator.DefaultAlphabet, c), "unexpected character %q", c)
	}

	got, err := s.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	_, err = s.Resolve("zzzzzz")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_Resolve(t *testing.T) {
	s := newTestStorage()
	originalURL := "https://example.com"

	id, err := s.Create(originalURL)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		wantURL string
		wantErr error
	}{
		{
			name:    "Existing ID",
			id:      id,
			wantURL: originalURL,
		},
		{
			name:    "Unknown ID",
			id:      "nonexistent",
			wantErr: storage.ErrNotFound,
		},
		{
			name:    "Empty ID",
			id:      "",
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, err := s.Resolve(tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, gotURL)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, gotURL)
		})
	}
}

func TestStorage_ResolveIsIdempotent(t *testing.T) {
	s := newTestStorage()

	id, err := s.Create("https://example.com/stable")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		got, err := s.Resolve(id)
		require.NoError(t, err)
		require.Equal(t, "https://example.com/stable", got)
	}
	assert.Equal(t, 1, s.Len())
}

func TestStorage_TargetIsStoredVerbatim(t *testing.T) {
	s := newTestStorage()

	for _, target := range []string{"not a url", "  padded  ", "https://example.com/?q=a b#frag", ""} {
		id, err := s.Create(target)
		require.NoError(t, err)

		got, err := s.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}
}

func TestStorage_CollisionDoesNotOverwrite(t *testing.T) {
	gen := &scriptedGenerator{ids: []string{"aaaaaa", "aaaaaa", "bbbbbb"}}
	s := NewStorage(gen, DefaultConfig())

	collisionsBefore := testutil.ToFloat64(metrics.IDCollisionsTotal)

	first, err := s.Create("https://first.example")
	require.NoError(t, err)
	assert.Equal(t, "aaaaaa", first)

	second, err := s.Create("https://second.example")
	require.NoError(t, err)
	assert.Equal(t, "bbbbbb", second)

	got, err := s.Resolve("aaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "https://first.example", got)

	got, err = s.Resolve("bbbbbb")
	require.NoError(t, err)
	assert.Equal(t, "https://second.example", got)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, collisionsBefore+1, testutil.ToFloat64(metrics.IDCollisionsTotal))
}

func TestStorage_GenerationExhausted(t *testing.T) {
	gen := &scriptedGenerator{ids: []string{"same00"}}
	s := NewStorage(gen, Config{MaxAttempts: 4})

	exhaustedBefore := testutil.ToFloat64(metrics.GenerationExhaustedTotal)

	_, err := s.Create("https://first.example")
	require.NoError(t, err)

	id, err := s.Create("https://second.example")
	assert.ErrorIs(t, err, storage.ErrGenerationExhausted)
	assert.Empty(t, id)

	got, err := s.Resolve("same00")
	require.NoError(t, err)
	assert.Equal(t, "https://first.example", got)

	assert.Equal(t, 1, s.Len())
	assert.Len(t, gen.lengths, 5)
	assert.Equal(t, exhaustedBefore+1, testutil.ToFloat64(metrics.GenerationExhaustedTotal))
}

func TestStorage_GrowsLengthAfterRepeatedCollisions(t *testing.T) {
	gen := &scriptedGenerator{ids: []string{"taken1", "taken1", "taken1", "taken1", "taken1", "free12"}}
	s := NewStorage(gen, Config{MaxAttempts: 10, GrowAfter: 2})

	_, err := s.Create("https://first.example")
	require.NoError(t, err)

	id, err := s.Create("https://second.example")
	require.NoError(t, err)
	assert.Equal(t, "free12", id)

	// first create, then 4 collisions growing every 2, then the free id
	assert.Equal(t, []int{6, 6, 6, 7, 7, 8}, gen.lengths)
}

func TestStorage_GrowthDisabled(t *testing.T) {
	gen := &scriptedGenerator{ids: []string{"taken1"}}
	s := NewStorage(gen, Config{MaxAttempts: 3, GrowAfter: 0})

	_, err := s.Create("https://first.example")
	require.NoError(t, err)

	_, err = s.Create("https://second.example")
	require.ErrorIs(t, err, storage.ErrGenerationExhausted)

	assert.Equal(t, []int{6, 6, 6, 6}, gen.lengths)
}

func TestNewStorage_Defaults(t *testing.T) {
	s := NewStorage(generator.NewDefault(), Config{MaxAttempts: 0, GrowAfter: -1})

	assert.Equal(t, DefaultConfig().MaxAttempts, s.config.MaxAttempts)
	assert.Equal(t, 0, s.config.GrowAfter)
	assert.Equal(t, 0, s.Len())
}

func TestStorage_ConcurrentCreate(t *testing.T) {
	s := newTestStorage()
	mappingsBefore := testutil.ToFloat64(metrics.MappingsGauge)

	const workers = 50
	const perWorker = 40

	type created struct {
		id     string
		target string
	}

	results := make(chan created, workers*perWorker)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				target := fmt.Sprintf("https://example.com/%d/%d", w, i)
				id, err := s.Create(target)
				if !assert.NoError(t, err) {
					return
				}
				results <- created{id: id, target: target}

				// concurrent reads of our own and foreign ids
				got, err := s.Resolve(id)
				assert.NoError(t, err)
				assert.Equal(t, target, got)
			}
		}(w)
	}

	wg.Wait()
	close(results)

	ids := make(map[string]string, workers*perWorker)
	for r := range results {
		_, dup := ids[r.id]
		require.False(t, dup, "identifier %q returned twice", r.id)
		ids[r.id] = r.target
	}

	assert.Len(t, ids, workers*perWorker)
	assert.Equal(t, workers*perWorker, s.Len())
	assert.Equal(t, mappingsBefore+workers*perWorker, testutil.ToFloat64(metrics.MappingsGauge))

	for id, target := range ids {
		got, err := s.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}
}
