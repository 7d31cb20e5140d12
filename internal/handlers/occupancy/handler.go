package occupancy

import (
	"net/http"
	"time"

	"pms/infras/otel"
	"pms/internal/domains/occupancy/service"
	"pms/shared/constant"
	"pms/shared/failure"
	"pms/shared/timezone"
	"pms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Occupancy
	otel    otel.Otel
}

func New(service service.Occupancy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupancy", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBoard)
		routerGroup.Get("/rooms/{id}", handler.GetRoomStatus)
		routerGroup.Get("/late-checkouts", handler.GetLateCheckouts)
		routerGroup.Get("/anomalies", handler.GetAnomalies)
	})
}

// GetBoard resolves the status of every room.
// @Summary Get the occupancy board
// @Description Resolve the status of every room at the given instant, with summary counts.
// @Tags Occupancy
// @Produce json
// @Param as_of query string false "RFC3339 instant or YYYY-MM-DD, defaults to now"
// @Success 200 {object} response.Data[dto.BoardResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy [get]
// @Security BearerAuth
func (handler *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoard")
	defer scope.End()

	asOf, err := asOfFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	board, err := handler.service.Board(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy board")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, board)
}

// GetRoomStatus resolves the status of a single room.
// @Summary Get the status of a room
// @Description Resolve one room, including the rule applied, occupant and integrity warnings.
// @Tags Occupancy
// @Produce json
// @Param id path string true "Room ID"
// @Param as_of query string false "RFC3339 instant or YYYY-MM-DD, defaults to now"
// @Success 200 {object} response.Data[dto.RoomStatusResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatus")
	defer scope.End()

	asOf, err := asOfFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.service.Resolve(ctx, id, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to resolve room status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// GetLateCheckouts lists occupied rooms whose guest is past the checkout date.
// @Summary Get late checkouts
// @Tags Occupancy
// @Produce json
// @Param as_of query string false "RFC3339 instant or YYYY-MM-DD, defaults to now"
// @Success 200 {object} response.Data[dto.LateCheckoutsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/late-checkouts [get]
// @Security BearerAuth
func (handler *Handler) GetLateCheckouts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLateCheckouts")
	defer scope.End()

	asOf, err := asOfFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	lateCheckouts, err := handler.service.LateCheckouts(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get late checkouts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lateCheckouts)
}

// GetAnomalies reports late checkouts, no-shows and data integrity warnings.
// @Summary Get occupancy anomalies
// @Tags Occupancy
// @Produce json
// @Param as_of query string false "RFC3339 instant or YYYY-MM-DD, defaults to now"
// @Success 200 {object} response.Data[dto.AnomalyReportResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/anomalies [get]
// @Security BearerAuth
func (handler *Handler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnomalies")
	defer scope.End()

	asOf, err := asOfFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Anomalies(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy anomalies")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

func asOfFromRequest(r *http.Request) (time.Time, error) {
	asOf, err := timezone.ParseAsOf(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		return time.Time{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	return asOf, nil
}
