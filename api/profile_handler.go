package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileReader interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
}

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profile   profileReader
}

func newProfileHandler(profile profileReader) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profile:   profile,
	}
}

// getProfile answers 404 "Profile not found" when the table is empty
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profile.GetProfile(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "Profile", err))
			return
		}

		h.logger.Debug().Str("profileID", profile.ID).Msg("profile fetched")
		h.responder.WriteJSON(w, http.StatusOK, profile)
	}
}
