package memory

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shortlink/internal/metrics"
	"github.com/MikhailRaia/shortlink/internal/model"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

// IDGenerator produces candidate identifiers for new mappings.
type IDGenerator interface {
	New() string
	NewWithLength(length int) string
	Length() int
}

// Config controls how Create reacts to identifier collisions.
type Config struct {
	MaxAttempts int // Candidates tried before giving up
	GrowAfter   int // Consecutive collisions before candidates get one character longer, 0 disables
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 10,
		GrowAfter:   5,
	}
}

// Storage implements URLStorage on top of a map guarded by a RWMutex.
type Storage struct {
	gen    IDGenerator
	config Config
	urls   map[string]model.URLMapping
	mutex  sync.RWMutex
}

// NewStorage creates an empty in-memory storage.
func NewStorage(gen IDGenerator, config Config) *Storage {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if config.GrowAfter < 0 {
		config.GrowAfter = 0
	}

	return &Storage{
		gen:    gen,
		config: config,
		urls:   make(map[string]model.URLMapping),
	}
}

// Create stores target under a new identifier and returns it.
// A stored mapping is never overwritten: colliding candidates are
// discarded and regenerated.
func (s *Storage) Create(target string) (string, error) {
	extra := 0
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		var id string
		if extra == 0 {
			id = s.gen.New()
		} else {
			id = s.gen.NewWithLength(s.gen.Length() + extra)
		}

		if s.insert(id, target) {
			metrics.RecordURLCreated()
			return id, nil
		}

		metrics.RecordCollision()
		log.Warn().
			Str("id", id).
			Int("attempt", attempt).
			Msg("Generated identifier already in use")

		if s.config.GrowAfter > 0 && attempt%s.config.GrowAfter == 0 {
			extra++
		}
	}

	metrics.RecordGenerationExhausted()
	log.Error().
		Int("attempts", s.config.MaxAttempts).
		Int("mappings", s.Len()).
		Msg("Could not find a free identifier")

	return "", fmt.Errorf("%w after %d attempts", storage.ErrGenerationExhausted, s.config.MaxAttempts)
}

func (s *Storage) insert(id, target string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, taken := s.urls[id]; taken {
		return false
	}

	s.urls[id] = model.URLMapping{ID: id, Target: target}
	return true
}

// Resolve returns the target stored under id.
func (s *Storage) Resolve(id string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	mapping, found := s.urls[id]
	if !found {
		return "", storage.ErrNotFound
	}

	return mapping.Target, nil
}

// Len returns the number of stored mappings.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.urls)
}
