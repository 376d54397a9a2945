package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectReader interface {
	GetProjects(ctx context.Context) ([]models.ProjectWithImages, error)
	GetProjectByID(ctx context.Context, id string) (*models.ProjectWithImages, error)
}

// maxProjectIDLength bounds ids accepted from the URL
const maxProjectIDLength = 128

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectReader
}

func newProjectHandler(projects projectReader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getAllProjects returns every project with its gallery, images sorted by
// image order
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.GetProjects(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "projects", err))
			return
		}

		h.logger.Debug().Int("count", len(projects)).Msg("projects fetched")
		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// getProject returns one project by id; unknown ids are a 404 here, the
// client-side fallback to the first project is not applied on the server
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "projectID"))
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}
		if len(projectID) > maxProjectIDLength {
			h.responder.WriteError(w, errs.NewValidationError("projectID", fmt.Sprintf("longer than %d characters", maxProjectIDLength)))
			return
		}

		project, err := h.projects.GetProjectByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "Project", err))
			return
		}

		h.logger.Debug().Str("projectID", projectID).Int("images", len(project.Images)).Msg("project fetched")
		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}
