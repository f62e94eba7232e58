package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-app-kernel/internal/metrics"
)

// compressionLevel is the gzip level used for application responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// service routes, no bootstrap
	router.Group(func(r chi.Router) {
		r.Method("GET", "/metrics", metrics.MetricsHandler())
		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(compressionLevel))
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(h.withConfiguration)
		r.Use(h.withHTTPAuth)

		// machine clients, bearer tokens
		r.Group(func(r chi.Router) {
			r.Use(h.withAPIAuth)
			for _, pattern := range []string{"/api/{module}", "/api/{module}/{option}"} {
				r.Get(pattern, h.dispatch)
				r.Post(pattern, h.dispatch)
			}
		})

		// browsers, session cookie
		r.Group(func(r chi.Router) {
			r.Use(h.withSessionAuth)
			for _, pattern := range []string{"/", "/{module}", "/{module}/{option}"} {
				r.Get(pattern, h.dispatch)
				r.Post(pattern, h.dispatch)
			}
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
