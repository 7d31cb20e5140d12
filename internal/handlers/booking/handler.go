package booking

import (
	"net/http"

	"pms/infras/otel"
	"pms/internal/domains/nightaudit/service"
	"pms/shared/constant"
	"pms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	nightAudit service.NightAudit
	otel       otel.Otel
}

func New(nightAudit service.NightAudit, otel otel.Otel) Handler {
	return Handler{
		nightAudit: nightAudit,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}/posting", handler.GetPostingStatus)
	})
}

// GetPostingStatus reports whether a booking was posted by a night audit.
// @Summary Get the posting status of a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.PostingStatusResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/posting [get]
// @Security BearerAuth
func (handler *Handler) GetPostingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPostingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.nightAudit.IsBookingPosted(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking posting status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
