package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=NightAudit=MockNightAuditService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pms/config"
	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/infras/s3"
	auditLogModel "pms/internal/domains/auditlog/model"
	auditLogRepository "pms/internal/domains/auditlog/repository"
	bookingModel "pms/internal/domains/booking/model"
	bookingRepository "pms/internal/domains/booking/repository"
	"pms/internal/domains/nightaudit/model"
	"pms/internal/domains/nightaudit/model/dto"
	"pms/internal/domains/nightaudit/repository"
	occupancyModel "pms/internal/domains/occupancy/model"
	occupancyService "pms/internal/domains/occupancy/service"
	"pms/shared"
	"pms/shared/cache"
	"pms/shared/constant"
	"pms/shared/event"
	"pms/shared/failure"
	gRepo "pms/shared/repository"
	"pms/shared/timezone"
	"pms/shared/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetRun         = "night_audit:get"
	cacheListRuns       = "night_audit:list"
	cacheListGeneration = "night_audit:list_generation"

	// listGenerationWindow must outlive every cached list page.
	listGenerationWindow = 30 * 24 * 60 * 60
)

type NightAudit interface {
	Preview(ctx context.Context, auditDate string) (dto.PreviewResponse, error)
	Run(ctx context.Context, req dto.RunRequest) (dto.RunResponse, error)
	List(ctx context.Context, query dto.ListQuery) (dto.ListRunsResponse, error)
	Get(ctx context.Context, id string) (dto.RunResponse, error)
	Details(ctx context.Context, id string) (dto.DetailsResponse, error)
	IsBookingPosted(ctx context.Context, bookingID string) (dto.PostingStatusResponse, error)
}

type serviceImpl struct {
	repo         repository.NightAudit
	bookingRepo  bookingRepository.Booking
	auditLogRepo auditLogRepository.AuditLog
	occupancy    occupancyService.Occupancy
	transactor   postgres.Transactor
	publisher    event.Publisher
	s3           s3.S3
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel

	now        func() time.Time
	background func(fn func())
}

func New(
	repo repository.NightAudit,
	bookingRepo bookingRepository.Booking,
	auditLogRepo auditLogRepository.AuditLog,
	occupancy occupancyService.Occupancy,
	transactor postgres.Transactor,
	publisher event.Publisher,
	s3 s3.S3,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) NightAudit {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		auditLogRepo: auditLogRepo,
		occupancy:    occupancy,
		transactor:   transactor,
		publisher:    publisher,
		s3:           s3,
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
		now:          timezone.Now,
		background:   func(fn func()) { go fn() },
	}
}

func (s *serviceImpl) Preview(ctx context.Context, auditDate string) (res dto.PreviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.Preview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := parseAuditDate(auditDate)
	if err != nil {
		return res, err
	}

	existing, err := s.completedRun(ctx, date)
	if err != nil {
		return res, err
	}

	candidates, err := s.bookingRepo.GetAll(ctx, bookingRepository.OrderForPosting(), bookingRepository.EligibleForPosting(date))
	if err != nil {
		log.Error().Err(err).Str("audit_date", auditDate).Msg("failed to get eligible bookings")

		return res, fmt.Errorf("failed to get eligible bookings: %w", err)
	}

	snapshot, err := s.snapshot(ctx, date)
	if err != nil {
		return res, err
	}

	draft := model.NightAuditRun{AuditDate: date}
	compose(&draft, filterEligible(candidates, date), snapshot)

	res.FromModel(draft, existing)
	res.CanRun = res.CanRun && !s.isFuture(date)

	return res, nil
}

func (s *serviceImpl) Run(ctx context.Context, req dto.RunRequest) (res dto.RunResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	date, err := parseAuditDate(req.AuditDate)
	if err != nil {
		return res, err
	}

	now := s.now()
	if s.isFuture(date) {
		return res, failure.BadRequestFromString(fmt.Sprintf("audit date %s is in the future", req.AuditDate)) // nolint:wrapcheck
	}

	existing, err := s.completedRun(ctx, date)
	if err != nil {
		return res, err
	}

	if existing != nil {
		return res, &model.DuplicateAuditError{AuditDate: date, RunID: existing.ID}
	}

	snapshot, err := s.snapshot(ctx, date)
	if err != nil {
		return res, err
	}

	run := model.NightAuditRun{
		ID:        uuid.NewString(),
		AuditDate: date,
		RunAt:     now,
		RunBy:     shared.OperatorFromContext(ctx),
		Status:    model.StatusCompleted,
		Notes:     req.Notes,
		CreatedAt: now,
	}

	// Once the transaction starts the caller can no longer cancel it.
	txCtx := context.WithoutCancel(ctx)

	err = s.transactor.WithinTx(txCtx, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.post(ctx, tx, &run, snapshot)
	})
	if err != nil {
		return res, s.runFailed(txCtx, run, snapshot, err)
	}

	log.Info().
		Str("run_id", run.ID).
		Str("audit_date", req.AuditDate).
		Int("bookings_posted", run.TotalBookingsPosted).
		Str("total_revenue", run.TotalRevenue.StringFixed(constant.MoneyDecimals)).
		Msg("night audit completed")

	res.FromModel(run)

	// Lists are retired before responding so the caller's next read sees the run.
	s.invalidateLists(txCtx)

	s.background(func() {
		s.afterRun(txCtx, run, res)
	})

	return res, nil
}

// post runs inside the write transaction. Any error rolls back every posting and the run row.
func (s *serviceImpl) post(ctx context.Context, tx *sqlx.Tx, run *model.NightAuditRun, snapshot occupancyModel.Snapshot) error {
	if err := s.repo.LockAuditDateTx(ctx, tx, run.AuditDate); err != nil {
		return err //nolint:wrapcheck
	}

	existing, err := s.repo.GetTx(ctx, tx, repository.CompletedOn(run.AuditDate))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if existing.ID != constant.Empty {
		return &model.DuplicateAuditError{AuditDate: run.AuditDate, RunID: existing.ID}
	}

	candidates, err := s.bookingRepo.GetAllForUpdateTx(ctx, tx, bookingRepository.OrderForPosting(), bookingRepository.EligibleForPosting(run.AuditDate))
	if err != nil {
		return err //nolint:wrapcheck
	}

	eligible := filterEligible(candidates, run.AuditDate)
	compose(run, eligible, snapshot)

	if err = s.repo.InsertTx(ctx, tx, *run); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return &model.DuplicateAuditError{AuditDate: run.AuditDate}
		}

		return err //nolint:wrapcheck
	}

	for _, booking := range eligible {
		posted, err := s.bookingRepo.MarkPostedTx(ctx, tx, bookingModel.Posting{
			BookingID:       booking.ID,
			PostedDate:      run.AuditDate,
			PostedAmount:    PostingAmount(booking, run.AuditDate),
			NightAuditRunID: run.ID,
			ModifiedAt:      run.RunAt,
			ModifiedBy:      run.RunBy,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !posted {
			return failure.Conflict(fmt.Sprintf("booking %s was posted or cancelled by another operation", booking.BookingNumber)) // nolint:wrapcheck
		}
	}

	return nil
}

// runFailed maps a failed transaction to the caller facing error and records a failed run
// for diagnostics when nothing conflicting was detected.
func (s *serviceImpl) runFailed(ctx context.Context, run model.NightAuditRun, snapshot occupancyModel.Snapshot, err error) error {
	var duplicate *model.DuplicateAuditError
	if errors.As(err, &duplicate) {
		if duplicate.RunID == constant.Empty {
			if existing, getErr := s.completedRun(ctx, run.AuditDate); getErr == nil && existing != nil {
				duplicate.RunID = existing.ID
			}
		}

		log.Warn().Str("audit_date", timezone.FormatDate(run.AuditDate)).Str("existing_run_id", duplicate.RunID).Msg("night audit already run")

		return duplicate
	}

	if failure.GetCode(err) == http.StatusConflict {
		log.Warn().Err(err).Str("audit_date", timezone.FormatDate(run.AuditDate)).Msg("night audit aborted by a concurrent change")

		return err
	}

	log.Error().Err(err).Str("audit_date", timezone.FormatDate(run.AuditDate)).Msg("night audit transaction failed")

	// A failed commit may still have been applied, recording a failed run would contradict it.
	if !errors.Is(err, postgres.ErrCommit) {
		s.recordFailedRun(ctx, run, snapshot, err)
	}

	return failure.TransactionFailure() // nolint:wrapcheck
}

func (s *serviceImpl) recordFailedRun(ctx context.Context, run model.NightAuditRun, snapshot occupancyModel.Snapshot, cause error) {
	message := cause.Error()

	failed := model.NightAuditRun{
		ID:           uuid.NewString(),
		AuditDate:    run.AuditDate,
		RunAt:        run.RunAt,
		RunBy:        run.RunBy,
		Status:       model.StatusFailed,
		Notes:        run.Notes,
		ErrorMessage: &message,
		CreatedAt:    s.now(),
	}
	compose(&failed, nil, snapshot)

	if err := s.repo.Insert(ctx, failed); err != nil {
		log.Error().Err(err).Str("audit_date", timezone.FormatDate(run.AuditDate)).Msg("failed to record failed night audit run")

		return
	}

	s.invalidateLists(ctx)
}

// invalidateLists moves list caching to a new generation. A page built from a read that
// predates the change is saved under the retired generation and never served again.
func (s *serviceImpl) invalidateLists(ctx context.Context) {
	if _, err := s.cache.Increment(ctx, cacheListGeneration, listGenerationWindow); err != nil {
		log.Error().Err(err).Msg("failed to invalidate night audit run lists")

		return
	}

	shared.InvalidateCaches(ctx, s.cache, cacheListRuns)
}

// listGeneration returns the current list generation. ok is false when it cannot be read,
// in which case lists bypass the cache.
func (s *serviceImpl) listGeneration(ctx context.Context) (generation int64, ok bool) {
	err := s.cache.Get(ctx, cacheListGeneration, &generation)
	if err != nil && !cache.IsMiss(err) {
		log.Warn().Err(err).Msg("failed to read night audit list generation, bypassing cache")

		return 0, false
	}

	return generation, true
}

// afterRun performs the best-effort side effects of a committed run.
func (s *serviceImpl) afterRun(ctx context.Context, run model.NightAuditRun, res dto.RunResponse) {
	entry, err := auditLogModel.New(auditLogModel.EventNightAuditRun, model.TableName, run.ID, run.RunBy, run.CompletedEvent())
	if err == nil {
		err = s.auditLogRepo.Insert(ctx, entry)
	}

	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to write night audit log")
	}

	if err = s.publisher.Publish(ctx, s.cfg.Event.NightAuditTopic, timezone.FormatDate(run.AuditDate), run.CompletedEvent()); err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to publish night audit event")
	}

	if !s.cfg.External.S3.Enable {
		return
	}

	report, err := json.Marshal(res)
	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to marshal night audit report")

		return
	}

	auditDate := timezone.FormatDate(run.AuditDate)

	url, err := s.s3.Put(ctx, s3.Object{
		Key:         s3.ObjectKey(s.cfg.NightAudit.ArchiveDirectory, auditDate[:4], auditDate+"_"+run.ID+".json"),
		ContentType: constant.ContentTypeJSON,
		Body:        report,
		Metadata: map[string]string{
			"run-id":     run.ID,
			"audit-date": auditDate,
			"run-by":     run.RunBy,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to archive night audit report")

		return
	}

	log.Info().Str("run_id", run.ID).Str("url", url).Msg("night audit report archived")
}

func (s *serviceImpl) List(ctx context.Context, query dto.ListQuery) (res dto.ListRunsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if query.Page < 1 {
		return res, failure.InvalidPageParam
	}

	if query.PageSize < 1 {
		return res, failure.InvalidPageSizeParam
	}

	query.PageSize = min(query.PageSize, s.cfg.NightAudit.MaxPageSize)

	if query.Status == constant.Empty {
		query.Status = model.StatusCompleted
	}

	generation, cached := s.listGeneration(ctx)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheListRuns, generation, query)

	if cached {
		err = s.cache.Get(ctx, cacheKey, &res)
		if err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for night audit runs")

			return res, nil
		}

		if !cache.IsMiss(err) {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("cache unavailable, reading night audit runs from database")
		}
	}

	filter := repository.ByStatus(query.Status)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count night audit runs")

		return res, fmt.Errorf("failed to count night audit runs: %w", err)
	}

	runs, err := s.repo.GetAll(ctx, repository.Page(query.Page, query.PageSize), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get night audit runs")

		return res, fmt.Errorf("failed to get night audit runs: %w", err)
	}

	res.FromModels(runs, total, query)

	if !cached {
		return res, nil
	}

	s.background(func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save night audit runs to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RunResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(id, "uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetRun, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for night audit run")

		return res, nil
	}

	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("cache unavailable, reading night audit run from database")
	}

	run, err := s.getCompleted(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(run)

	s.background(func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save night audit run to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) Details(ctx context.Context, id string) (res dto.DetailsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.Details")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(id, "uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	run, err := s.getCompleted(ctx, id)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingRepo.GetAll(ctx, bookingRepository.OrderForDetails(), bookingRepository.PostedByRun(run.ID))
	if err != nil {
		log.Error().Err(err).Str("run_id", id).Msg("failed to get posted bookings")

		return res, fmt.Errorf("failed to get posted bookings: %w", err)
	}

	reconcile(run, bookings)

	res.FromModels(run, bookings)

	return res, nil
}

func (s *serviceImpl) IsBookingPosted(ctx context.Context, bookingID string) (res dto.PostingStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".nightaudit.IsBookingPosted")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(bookingID, "uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(bookingModel.EntityName) // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) completedRun(ctx context.Context, date time.Time) (*model.NightAuditRun, error) {
	run, err := s.repo.Get(ctx, repository.CompletedOn(date))
	if err != nil {
		log.Error().Err(err).Str("audit_date", timezone.FormatDate(date)).Msg("failed to get completed night audit run")

		return nil, fmt.Errorf("failed to get completed night audit run: %w", err)
	}

	if run.ID == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	return &run, nil
}

func (s *serviceImpl) getCompleted(ctx context.Context, id string) (model.NightAuditRun, error) {
	run, err := s.repo.Get(ctx, repository.ByIDAndStatus(id, model.StatusCompleted))
	if err != nil {
		log.Error().Err(err).Str("run_id", id).Msg("failed to get night audit run")

		return run, fmt.Errorf("failed to get night audit run: %w", err)
	}

	if run.ID == constant.Empty {
		return run, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	return run, nil
}

// snapshot counts room states at the start of the audit day.
func (s *serviceImpl) snapshot(ctx context.Context, date time.Time) (occupancyModel.Snapshot, error) {
	snapshot, err := s.occupancy.Snapshot(ctx, timezone.Midnight(date, timezone.GetLocation()))
	if err != nil {
		log.Error().Err(err).Str("audit_date", timezone.FormatDate(date)).Msg("failed to snapshot occupancy")

		return snapshot, fmt.Errorf("failed to snapshot occupancy: %w", err)
	}

	return snapshot, nil
}

// isFuture reports whether date is after today in the hotel timezone and future audits are
// not allowed.
func (s *serviceImpl) isFuture(date time.Time) bool {
	return !s.cfg.NightAudit.AllowFutureDates && date.After(timezone.DateOnly(s.now()))
}

func parseAuditDate(value string) (time.Time, error) {
	date, err := timezone.ParseDate(value)
	if err != nil {
		return time.Time{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	return date, nil
}

// reconcile warns when the stored aggregates no longer match the bookings linked to the run.
func reconcile(run model.NightAuditRun, bookings []bookingModel.Booking) {
	linked := decimal.Zero
	for _, booking := range bookings {
		linked = linked.Add(postedAmountOf(booking))
	}

	if len(bookings) == run.TotalBookingsPosted && linked.Equal(run.TotalRevenue) {
		return
	}

	log.Warn().
		Str("run_id", run.ID).
		Int("stored_bookings", run.TotalBookingsPosted).
		Int("linked_bookings", len(bookings)).
		Str("stored_revenue", run.TotalRevenue.StringFixed(constant.MoneyDecimals)).
		Str("linked_revenue", linked.StringFixed(constant.MoneyDecimals)).
		Msg("night audit run does not reconcile with its posted bookings")
}
