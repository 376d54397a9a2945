package api

import (
	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(storage database.Storage) *routeHandlers {
	return &routeHandlers{
		skillHandler:      newSkillHandler(storage),
		experienceHandler: newExperienceHandler(storage),
		projectHandler:    newProjectHandler(storage),
		profileHandler:    newProfileHandler(storage),
		healthHandler:     newHealthHandler(storage),
	}
}
