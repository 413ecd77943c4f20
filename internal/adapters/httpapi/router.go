package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	// GenerateLimiter throttles the generation endpoint; nil disables
	// local rate limiting.
	GenerateLimiter *RateLimiter
}

func NewRouter(s *Server) http.Handler {
	return NewRouterWithOptions(s, RouterOptions{})
}

// NewRouterWithOptions constructs the API HTTP router. This is a thin
// adapter: handlers decode/encode JSON and delegate to the planner service.
func NewRouterWithOptions(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Liveness probe for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		if opts.GenerateLimiter != nil {
			r.With(opts.GenerateLimiter.Limit).Post("/itineraries", s.CreateItinerary)
		} else {
			r.Post("/itineraries", s.CreateItinerary)
		}
		r.Get("/trips", s.ListSavedTrips)
		r.Delete("/trips/{tripID}", s.DeleteSavedTrip)
	})

	return r
}
