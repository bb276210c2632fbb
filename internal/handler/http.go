package handler

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shortlink/internal/logger"
	"github.com/MikhailRaia/shortlink/internal/metrics"
	"github.com/MikhailRaia/shortlink/internal/middleware"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

const maxBodySize = 64 << 10

//go:embed static/index.html
var indexPage []byte

type URLService interface {
	ShortenURL(ctx context.Context, originalURL string) (string, error)
	GetOriginalURL(ctx context.Context, id string) (string, error)
}

type Handler struct {
	urlService URLService
}

func NewHandler(urlService URLService) *Handler {
	return &Handler{
		urlService: urlService,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Recoverer)

	r.Use(middleware.GzipReader)
	r.Use(chimiddleware.Compress(5, "text/html", "text/plain", "application/json"))

	r.Get("/", h.handleIndex)
	r.Post("/", h.handleShorten)
	r.Post("/shorten", h.handleShortenForm)
	r.Post("/api/shorten", h.HandleShortenJSON)
	r.Get("/ping", h.handlePing)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/{id}", h.handleRedirect)

	return r
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexPage)
}

// handleShortenForm accepts the url field of the index page form.
func (h *Handler) handleShortenForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	originalURL := r.PostFormValue("url")

	shortenedURL, err := h.urlService.ShortenURL(r.Context(), originalURL)
	if err != nil {
		writeShortenError(w, r, err)
		return
	}

	writeText(w, http.StatusCreated, shortenedURL)
}

// handleShorten accepts the URL as a raw text/plain body.
func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/plain") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shortenedURL, err := h.urlService.ShortenURL(r.Context(), string(body))
	if err != nil {
		writeShortenError(w, r, err)
		return
	}

	writeText(w, http.StatusCreated, shortenedURL)
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	originalURL, err := h.urlService.GetOriginalURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "ID not found", http.StatusNotFound)
			return
		}

		log.Error().Err(err).Str("id", id).Msg("Failed to resolve short URL")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Location is set verbatim; http.Redirect would rewrite relative targets.
	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeShortenError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyURL):
		http.Error(w, "url is required", http.StatusBadRequest)
	case errors.Is(err, storage.ErrGenerationExhausted):
		// already logged by the storage
		http.Error(w, "could not allocate a short URL, try again later", http.StatusInternalServerError)
	default:
		log.Error().Err(err).Str("request_id", chimiddleware.GetReqID(r.Context())).Msg("Failed to shorten URL")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
