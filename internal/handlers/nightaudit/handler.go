package nightaudit

import (
	"net/http"

	"pms/config"
	"pms/infras/otel"
	"pms/internal/domains/nightaudit/model/dto"
	"pms/internal/domains/nightaudit/service"
	"pms/shared/constant"
	"pms/shared/validator"
	"pms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.NightAudit
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.NightAudit, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/night-audits", func(routerGroup chi.Router) {
		routerGroup.Get("/preview", handler.GetPreview)
		routerGroup.Post("/", handler.RunNightAudit)
		routerGroup.Get("/", handler.GetRuns)
		routerGroup.Get("/{id}", handler.GetRunByID)
		routerGroup.Get("/{id}/details", handler.GetRunDetails)
	})
}

// GetPreview computes what a night audit would post without writing anything.
// @Summary Preview a night audit
// @Tags Night Audit
// @Produce json
// @Param date query string true "Audit date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.PreviewResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/night-audits/preview [get]
// @Security BearerAuth
func (handler *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreview")
	defer scope.End()

	preview, err := handler.service.Preview(ctx, r.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to preview night audit")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, preview)
}

// RunNightAudit posts the eligible bookings of a date and records the run.
// @Summary Run the night audit
// @Description Posts every eligible booking of the audit date in one transaction. A date can only be audited once.
// @Tags Night Audit
// @Accept json
// @Produce json
// @Param request body dto.RunRequest true "Run Night Audit Request"
// @Success 201 {object} response.Data[dto.RunResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Already run for the date or bookings changed concurrently"
// @Failure 503 {object} response.Error "Transaction aborted, re-query before retrying"
// @Router /v1/night-audits [post]
// @Security BearerAuth
func (handler *Handler) RunNightAudit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunNightAudit")
	defer scope.End()

	req := dto.RunRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	run, err := handler.service.Run(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("audit_date", req.AuditDate).Msg("failed to run night audit")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Night audit " + run.ID + " run by user " + user)

	response.WithJSON(w, http.StatusCreated, run)
}

// GetRuns lists night audit runs, newest audit date first.
// @Summary List night audit runs
// @Tags Night Audit
// @Produce json
// @Param page query integer false "Page, starting at 1"
// @Param page_size query integer false "Page size, clamped to the configured maximum"
// @Param status query string false "completed (default) or failed"
// @Success 200 {object} response.Data[dto.ListRunsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/night-audits [get]
// @Security BearerAuth
func (handler *Handler) GetRuns(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRuns")
	defer scope.End()

	query := dto.ListQuery{}

	if err := query.FromRequest(r, handler.cfg.NightAudit.DefaultPageSize, handler.cfg.NightAudit.MaxPageSize); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	runs, err := handler.service.List(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get night audit runs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, runs)
}

// GetRunByID returns a completed run.
// @Summary Get a night audit run
// @Tags Night Audit
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Data[dto.RunResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/night-audits/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRunByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRunByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	run, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("run_id", id).Msg("failed to get night audit run")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, run)
}

// GetRunDetails returns a completed run with the bookings it posted.
// @Summary Get night audit details
// @Tags Night Audit
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Data[dto.DetailsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/night-audits/{id}/details [get]
// @Security BearerAuth
func (handler *Handler) GetRunDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRunDetails")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	details, err := handler.service.Details(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("run_id", id).Msg("failed to get night audit details")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, details)
}
