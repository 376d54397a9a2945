package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceReader interface {
	GetExperiences(ctx context.Context) ([]models.Experience, error)
}

type experienceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	experiences experienceReader
}

func newExperienceHandler(experiences experienceReader) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		experiences: experiences,
	}
}

func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experiences.GetExperiences(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "experiences", err))
			return
		}

		h.logger.Debug().Int("count", len(experiences)).Msg("experiences fetched")
		h.responder.WriteJSON(w, http.StatusOK, experiences)
	}
}
