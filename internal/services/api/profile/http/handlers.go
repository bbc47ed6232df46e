// Package http provides http transport for profiles
package http

import (
	stdhttp "net/http"

	"immersion/internal/modkit/httpkit"
	"immersion/internal/platform/logger"
	"immersion/internal/services/api/profile/domain"
)

// Register mounts profile endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// totals, streak and charted history
	httpkit.PostJSON[domain.ProfileInput](r, "/", h.profile)

	// per user calendar zone
	httpkit.PutJSON[domain.TimezoneInput](r, "/timezone", h.timezone)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /profile Profile profileGet
// @Summary Immersion profile with totals, streak and history
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body domain.ProfileInput true "Query"
// @Success 200 {object} domain.Profile "ok"
// @Failure 404 {object} httpkit.Envelope "User not found"
// @Router /profile [post]
func (h *handlers) profile(r *stdhttp.Request, in domain.ProfileInput) (any, error) {
	ctx := logger.WithActor(r.Context(), in.UserID, in.GuildID)
	return h.svc.Profile(ctx, in)
}

// swagger:route PUT /profile/timezone Profile profileTimezone
// @Summary Set the time zone logs and streaks are dated in
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body domain.TimezoneInput true "Zone"
// @Success 200 {object} domain.TimezoneResult "ok"
// @Router /profile/timezone [put]
func (h *handlers) timezone(r *stdhttp.Request, in domain.TimezoneInput) (any, error) {
	return h.svc.SetTimezone(logger.WithActor(r.Context(), in.UserID, ""), in)
}
