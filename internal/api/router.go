package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/corsgate/corsgate/internal/api/handlers"
	mw "github.com/corsgate/corsgate/internal/api/middleware"
	"github.com/corsgate/corsgate/pkg/cors"
)

type Dependencies struct {
	// CORSPolicy gates the /api/v1 routes. nil allows every origin.
	CORSPolicy     cors.Policy
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy keys rate limiting on X-Forwarded-For.
	TrustProxy     bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	// Logging wraps Recovery so panicking requests still get a request line.
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	if dep.RateLimitRPS > 0 && dep.RateLimitBurst > 0 {
		r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst, dep.TrustProxy))
	}
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	eh := handlers.NewEchoHandler()
	r.Route("/api/v1", func(api chi.Router) {
		// Runs before method routing so preflights never hit a 405.
		api.Use(mw.CORS(dep.CORSPolicy))
		api.Post("/echo", eh.Echo)
	})

	return r
}
