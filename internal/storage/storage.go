package storage

import "errors"

var (
	// ErrNotFound is returned when an identifier has no mapping.
	ErrNotFound = errors.New("short URL not found")

	// ErrGenerationExhausted is returned when no free identifier was found
	// within the configured number of attempts.
	ErrGenerationExhausted = errors.New("identifier generation exhausted")
)

// URLStorage keeps identifier to URL mappings.
type URLStorage interface {
	Create(target string) (string, error)

	Resolve(id string) (string, error)
}
