package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     pinger
	startedAt time.Time
}

func newHealthHandler(store pinger) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		startedAt: time.Now(),
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("storage ping failed")
			h.responder.WriteError(w, errs.NewDatabaseUnavailable(err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, healthResponse{
			Status: "ok",
			Uptime: time.Since(h.startedAt).Round(time.Second).String(),
		})
	}
}
