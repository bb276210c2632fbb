package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// gzipBody closes both the decompressor and the original request body.
type gzipBody struct {
	*gzip.Reader
	orig io.ReadCloser
}

func (b gzipBody) Close() error {
	zerr := b.Reader.Close()
	if err := b.orig.Close(); err != nil {
		return err
	}
	return zerr
}

// GzipReader transparently decompresses gzipped request bodies, so the
// shorten endpoints accept compressed form, text and JSON payloads alike.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			log.Debug().Err(err).Msg("Rejecting malformed gzip body")
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}

		r.Body = gzipBody{Reader: gzReader, orig: r.Body}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
