package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shortlink/internal/model"
)

func (h *Handler) HandleShortenJSON(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request model.ShortenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shortenedURL, err := h.urlService.ShortenURL(r.Context(), request.URL)
	if err != nil {
		writeShortenError(w, r, err)
		return
	}

	responseJSON, err := json.Marshal(model.ShortenResponse{Result: shortenedURL})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode shorten response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(responseJSON)
}
