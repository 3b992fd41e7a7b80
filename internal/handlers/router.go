package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter wires the slash command endpoint together with health, metrics
// and the calendar export. The calendar is only served when calendarToken
// is set, and then only to requests carrying it as the token parameter.
func NewRouter(h *SlackHandler, gatherer prometheus.Gatherer, calendarToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/slack/commands", h.HandleSlashCommand)
	if calendarToken != "" {
		r.With(requireToken(calendarToken)).Get("/calendar.ics", h.HandleCalendar)
	}
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	return r
}

func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.URL.Query().Get("token")
			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
