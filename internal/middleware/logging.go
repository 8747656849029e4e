package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"request_id": RequestIDFromContext(r.Context()),
				"status":     resp.statusCode,
				"duration":   time.Since(begin).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warnf(" ====> request [%s] path: [%s] [UA: %s]", r.Method, r.URL.Path, r.UserAgent())
				return
			}
			entry.Tracef(" ====> request [%s] path: [%s] [UA: %s]", r.Method, r.URL.Path, r.UserAgent())
		})
	}
}
