// Package generator produces short random identifiers for stored URLs.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"slices"

	"github.com/MikhailRaia/shortlink/internal/pool"
)

const (
	// DefaultLength is the identifier length used when none is configured.
	DefaultLength = 6

	// DefaultAlphabet is the URL-safe nanoid alphabet.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	scratchPoolSize = 32
)

var (
	ErrInvalidLength   = errors.New("identifier length must be positive")
	ErrInvalidAlphabet = errors.New("alphabet must contain at least 2 distinct URL-safe characters")
)

// urlSafe reports whether c can appear in a path segment without escaping.
// '.' is left out so that an identifier can never be a dot segment.
func urlSafe(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '~'
}

// ValidateAlphabet checks that alphabet holds at least two distinct
// characters from A-Z, a-z, 0-9, '-', '_' and '~'.
func ValidateAlphabet(alphabet string) error {
	if len(alphabet) < 2 {
		return ErrInvalidAlphabet
	}

	var seen [256]bool
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if !urlSafe(c) {
			return fmt.Errorf("%w: %q is not URL-safe", ErrInvalidAlphabet, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %q appears more than once", ErrInvalidAlphabet, c)
		}
		seen[c] = true
	}
	return nil
}

type scratch struct {
	buf []byte
}

func (s *scratch) Reset() {
	clear(s.buf[:cap(s.buf)])
	s.buf = s.buf[:0]
}

// Generator returns random identifiers drawn uniformly from a fixed alphabet.
// It keeps no sequence state and is safe for concurrent use.
type Generator struct {
	alphabet string
	length   int
	// bytes at or above limit are discarded so every symbol is equally likely
	limit   int
	buffers *pool.Pool[*scratch]
}

// New validates the alphabet and length and returns a Generator.
func New(alphabet string, length int) (*Generator, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	if err := ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}

	return &Generator{
		alphabet: alphabet,
		length:   length,
		limit:    256 - 256%len(alphabet),
		buffers: pool.New(scratchPoolSize, func() *scratch {
			return &scratch{buf: make([]byte, 0, 2*length)}
		}),
	}, nil
}

// NewDefault returns a Generator with DefaultAlphabet and DefaultLength.
func NewDefault() *Generator {
	g, _ := New(DefaultAlphabet, DefaultLength)
	return g
}

// New returns a fresh identifier of the configured length.
func (g *Generator) New() string {
	return g.NewWithLength(g.length)
}

// NewWithLength returns a fresh identifier of the given length.
func (g *Generator) NewWithLength(length int) string {
	if length <= 0 {
		return ""
	}

	s := g.buffers.Get()
	defer g.buffers.Put(s)

	id := make([]byte, 0, length)
	for len(id) < length {
		need := length - len(id)
		s.buf = slices.Grow(s.buf[:0], need+need/2+1)[:need+need/2+1]

		// crypto/rand.Read never returns an error since Go 1.24.
		_, _ = rand.Read(s.buf)

		for _, b := range s.buf {
			if int(b) >= g.limit {
				continue
			}
			id = append(id, g.alphabet[int(b)%len(g.alphabet)])
			if len(id) == length {
				break
			}
		}
	}

	return string(id)
}

// Length returns the configured identifier length.
func (g *Generator) Length() int {
	return g.length
}

// Alphabet returns the configured alphabet.
func (g *Generator) Alphabet() string {
	return g.alphabet
}
