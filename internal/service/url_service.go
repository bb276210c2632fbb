package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MikhailRaia/shortlink/internal/metrics"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

// ErrEmptyURL is returned when there is nothing to shorten.
var ErrEmptyURL = errors.New("url is empty")

// URLService provides business logic for creating and resolving short URLs.
type URLService struct {
	storage storage.URLStorage
	baseURL string
}

// NewURLService constructs a URLService with the given storage and base URL.
func NewURLService(storage storage.URLStorage, baseURL string) *URLService {
	return &URLService{
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ShortenURL stores originalURL and returns the absolute short URL.
// The URL is stored as given apart from surrounding whitespace.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (string, error) {
	originalURL = strings.TrimSpace(originalURL)
	if originalURL == "" {
		return "", ErrEmptyURL
	}

	id, err := s.storage.Create(originalURL)
	if err != nil {
		return "", fmt.Errorf("error creating short URL: %w", err)
	}

	return s.shortURL(id)
}

// GetOriginalURL resolves an ID to the original URL.
func (s *URLService) GetOriginalURL(ctx context.Context, id string) (string, error) {
	originalURL, err := s.storage.Resolve(id)
	if err != nil {
		return "", err
	}

	metrics.RecordRedirect()
	return originalURL, nil
}

func (s *URLService) shortURL(id string) (string, error) {
	shortenedURL, err := url.JoinPath(s.baseURL, id)
	if err != nil {
		return "", fmt.Errorf("error building short URL: %w", err)
	}
	return shortenedURL, nil
}
