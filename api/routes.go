package api

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public read-only API. Only GET is routed, so
// any other method on these paths gets chi's 405.
func setupRoutes(r chi.Router, handlers *routeHandlers, rateLimit int64, ratePeriod time.Duration) {
	r.Get("/healthz", handlers.healthHandler.check())

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimitMiddleware(rateLimit, ratePeriod))

		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Get("/experiences", handlers.experienceHandler.getAllExperiences())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/profile", handlers.profileHandler.getProfile())
	})
}
