// Package http provides http transport for immersion logging
package http

import (
	stdhttp "net/http"

	"immersion/internal/modkit/httpkit"
	"immersion/internal/platform/logger"
	"immersion/internal/services/api/immersion/domain"
)

// Register mounts logging endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	registerTags()
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.LogInput](r, "/log", h.log)
	httpkit.PostJSON[domain.BackfillInput](r, "/backfill", h.backfill)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /immersion/log Immersion immersionLog
// @Summary Log immersion for today in the user's time zone
// @Tags Immersion
// @Accept json
// @Produce json
// @Param payload body domain.LogInput true "Log"
// @Success 201 {object} domain.Logged "created"
// @Failure 400 {object} httpkit.Envelope "format error"
// @Failure 422 {object} httpkit.Envelope "rule or bounds violation"
// @Router /immersion/log [post]
func (h *handlers) log(r *stdhttp.Request, in domain.LogInput) (any, error) {
	out, err := h.svc.Log(logger.WithActor(r.Context(), in.UserID, in.GuildID), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /immersion/backfill Immersion immersionBackfill
// @Summary Log immersion on a past date
// @Tags Immersion
// @Accept json
// @Produce json
// @Param payload body domain.BackfillInput true "Backfill"
// @Success 201 {object} domain.Logged "created"
// @Failure 400 {object} httpkit.Envelope "format error"
// @Failure 422 {object} httpkit.Envelope "future date, rule or bounds violation"
// @Router /immersion/backfill [post]
func (h *handlers) backfill(r *stdhttp.Request, in domain.BackfillInput) (any, error) {
	out, err := h.svc.Backfill(logger.WithActor(r.Context(), in.UserID, in.GuildID), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}
