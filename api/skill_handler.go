package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillReader interface {
	GetSkills(ctx context.Context) ([]models.Skill, error)
}

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skills    skillReader
}

func newSkillHandler(skills skillReader) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skills:    skills,
	}
}

// getAllSkills returns every skill ordered by display order
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skills.GetSkills(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "skills", err))
			return
		}

		h.logger.Debug().Int("count", len(skills)).Msg("skills fetched")
		h.responder.WriteJSON(w, http.StatusOK, skills)
	}
}
