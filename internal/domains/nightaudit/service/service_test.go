package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"pms/config"
	"pms/infras/otel/mocks"
	"pms/infras/postgres"
	pgMocks "pms/infras/postgres/mocks"
	"pms/infras/s3"
	s3Mocks "pms/infras/s3/mocks"
	auditLogMocks "pms/internal/domains/auditlog/mocks"
	auditLogModel "pms/internal/domains/auditlog/model"
	bookingMocks "pms/internal/domains/booking/mocks"
	bookingModel "pms/internal/domains/booking/model"
	nightAuditMocks "pms/internal/domains/nightaudit/mocks"
	"pms/internal/domains/nightaudit/model"
	"pms/internal/domains/nightaudit/model/dto"
	"pms/internal/domains/nightaudit/service"
	occupancyMocks "pms/internal/domains/occupancy/mocks"
	occupancyModel "pms/internal/domains/occupancy/model"
	"pms/shared/cache"
	cacheMocks "pms/shared/cache/mocks"
	eventMocks "pms/shared/event/mocks"
	"pms/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	runID     = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	bookingID = "0b9a8c7d-6e5f-4a3b-9c2d-1e0f9a8b7c6d"

	listGenerationKey = "night_audit:list_generation"
)

var now = time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC)

type deps struct {
	repo        *nightAuditMocks.MockNightAudit
	bookingRepo *bookingMocks.MockBooking
	auditLog    *auditLogMocks.MockAuditLog
	occupancy   *occupancyMocks.MockOccupancy
	publisher   *eventMocks.MockPublisher
	s3          *s3Mocks.MockS3
	cache       *cacheMocks.MockRedisCache
	cfg         *config.Config
}

func newDeps(ctrl *gomock.Controller) deps {
	cfg := &config.Config{}
	cfg.NightAudit.MaxPageSize = 100
	cfg.NightAudit.ArchiveDirectory = "night-audits"
	cfg.Event.NightAuditTopic = "night_audit.completed"
	cfg.Cache.TTL = 60

	return deps{
		repo:        nightAuditMocks.NewMockNightAudit(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		auditLog:    auditLogMocks.NewMockAuditLog(ctrl),
		occupancy:   occupancyMocks.NewMockOccupancy(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		cfg:         cfg,
	}
}

func (d deps) service(transactor postgres.Transactor) service.NightAudit {
	svc := service.New(d.repo, d.bookingRepo, d.auditLog, d.occupancy, transactor, d.publisher, d.s3, d.cache, d.cfg, mocks.NewOtel())

	return service.Synchronous(svc, now)
}

func (d deps) deferredService(transactor postgres.Transactor) (service.NightAudit, func()) {
	svc := service.New(d.repo, d.bookingRepo, d.auditLog, d.occupancy, transactor, d.publisher, d.s3, d.cache, d.cfg, mocks.NewOtel())

	return service.Deferred(svc, now)
}

func (d deps) expectListGeneration(generation int64) {
	d.cache.EXPECT().Get(gomock.Any(), listGenerationKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			if generation == 0 {
				return fmt.Errorf("failed to get cache value: %w", cache.Nil)
			}

			*value.(*int64) = generation

			return nil
		})
}

func (d deps) expectListsInvalidated() {
	d.cache.EXPECT().Increment(gomock.Any(), listGenerationKey, gomock.Any()).Return(int64(2), nil)
	d.cache.EXPECT().Clear(gomock.Any(), "night_audit:list:*").Return(nil)
}

func date(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

// unposted returns three bookings worth 450.00: two paid by card and one in cash.
func unposted() []bookingModel.Booking {
	return []bookingModel.Booking{
		{ID: "b1", BookingNumber: "BK-001", RoomNumber: "101", Status: bookingModel.StatusConfirmed,
			CheckInDate: date(10), CheckOutDate: date(12), TotalAmount: decimal.RequireFromString("150"),
			PaymentMethod: strPtr("Card"), Source: strPtr("Website")},
		{ID: "b2", BookingNumber: "BK-002", RoomNumber: "102", Status: bookingModel.StatusCheckedIn,
			CheckInDate: date(9), CheckOutDate: date(11), TotalAmount: decimal.RequireFromString("200"),
			PaymentMethod: strPtr("Card"), Source: strPtr("Walk-in")},
		{ID: "b3", BookingNumber: "BK-003", RoomNumber: "103", Status: bookingModel.StatusConfirmed,
			CheckInDate: date(10), CheckOutDate: date(11), TotalAmount: decimal.RequireFromString("100"),
			PaymentMethod: strPtr("Cash"), Source: strPtr("Website")},
	}
}

func snapshot() occupancyModel.Snapshot {
	return occupancyModel.Snapshot{Total: 4, Occupied: 3, Available: 1}
}

func (d deps) expectTxUntilPosting(bookings []bookingModel.Booking) {
	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{}, nil)
	d.occupancy.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshot(), nil)
	d.repo.EXPECT().LockAuditDateTx(gomock.Any(), gomock.Nil(), date(10)).Return(nil)
	d.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.NightAuditRun{}, nil)
	d.bookingRepo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(bookings, nil)
}

func (d deps) expectSideEffects() {
	d.expectListsInvalidated()
	d.auditLog.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(gomock.Any(), "night_audit.completed", "2024-03-10", gomock.Any()).Return(nil)
}

func TestNightAuditService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(unposted())

	var inserted model.NightAuditRun
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, run model.NightAuditRun) error {
			inserted = run
			return nil
		})

	var postings []bookingModel.Posting
	d.bookingRepo.EXPECT().MarkPostedTx(gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, posting bookingModel.Posting) (bool, error) {
			postings = append(postings, posting)
			return true, nil
		}).Times(3)

	d.expectSideEffects()

	res, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10", Notes: strPtr("end of day")})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", res.AuditDate)
	assert.Equal(t, model.StatusCompleted, res.Status)
	assert.Equal(t, 3, res.TotalBookingsPosted)
	assert.Equal(t, 2, res.TotalCheckins)
	assert.Equal(t, 0, res.TotalCheckouts)
	assert.Equal(t, "450.00", res.TotalRevenue)
	assert.Equal(t, "75.00", res.OccupancyRate)
	assert.Equal(t, "end of day", *res.Notes)

	require.Len(t, res.PaymentMethodBreakdown, 2)
	assert.Equal(t, dto.BreakdownItemResponse{Category: "Card", Count: 2, Amount: "350.00"}, res.PaymentMethodBreakdown[0])
	assert.Equal(t, dto.BreakdownItemResponse{Category: "Cash", Count: 1, Amount: "100.00"}, res.PaymentMethodBreakdown[1])

	assert.Equal(t, res.ID, inserted.ID)
	assert.True(t, inserted.PaymentMethodBreakdown.Total().Equal(inserted.TotalRevenue))
	assert.True(t, inserted.BookingChannelBreakdown.Total().Equal(inserted.TotalRevenue))

	require.Len(t, postings, 3)
	posted := decimal.Zero
	for _, posting := range postings {
		assert.Equal(t, inserted.ID, posting.NightAuditRunID)
		assert.Equal(t, date(10), posting.PostedDate)
		posted = posted.Add(posting.PostedAmount)
	}
	assert.True(t, posted.Equal(inserted.TotalRevenue), "posted amounts must add up to the run revenue")
}

func TestNightAuditService_Run_NoBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(nil)
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.expectSideEffects()

	res, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalBookingsPosted)
	assert.Equal(t, "0.00", res.TotalRevenue)
	assert.Empty(t, res.PaymentMethodBreakdown)
}

func TestNightAuditService_Run_ArchivesReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	d.cfg.External.S3.Enable = true
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(nil)
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.expectSideEffects()
	d.s3.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, object s3.Object) (string, error) {
			assert.True(t, strings.HasPrefix(object.Key, "night-audits/2024/2024-03-10_"), object.Key)
			assert.Equal(t, "application/json", object.ContentType)
			assert.Equal(t, "2024-03-10", object.Metadata["audit-date"])
			assert.NotEmpty(t, object.Body)

			return "https://cdn.example.com/" + object.Key, nil
		})

	_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.NoError(t, err)
}

func TestNightAuditService_Run_SideEffectFailuresAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(nil)
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Increment(gomock.Any(), listGenerationKey, gomock.Any()).Return(int64(0), errors.New("redis down"))
	d.auditLog.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	res, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, res.Status)
}

func TestNightAuditService_Run_InvalidatesListsBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc, flush := d.deferredService(pgMocks.NewTransactor())

	d.expectTxUntilPosting(nil)
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

	var invalidated, logged bool
	d.cache.EXPECT().Increment(gomock.Any(), listGenerationKey, gomock.Any()).
		DoAndReturn(func(context.Context, string, int) (int64, error) {
			invalidated = true

			return 2, nil
		})
	d.cache.EXPECT().Clear(gomock.Any(), "night_audit:list:*").Return(nil)
	d.auditLog.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, auditLogModel.AuditLog) error {
			logged = true

			return nil
		})
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.NoError(t, err)
	assert.True(t, invalidated, "run lists must be invalidated before the run is reported")
	assert.False(t, logged, "the audit log is written in the background")

	flush()

	assert.True(t, logged)
}

func TestNightAuditService_Run_AlreadyRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	t.Run("found before the transaction", func(t *testing.T) {
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{ID: runID, Status: model.StatusCompleted}, nil)

		_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), runID)

		var duplicate *model.DuplicateAuditError
		require.ErrorAs(t, err, &duplicate)
		assert.Equal(t, runID, duplicate.RunID)
	})

	t.Run("found after taking the lock", func(t *testing.T) {
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{}, nil)
		d.occupancy.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshot(), nil)
		d.repo.EXPECT().LockAuditDateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
		d.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.NightAuditRun{ID: runID}, nil)

		_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), runID)
	})

	t.Run("unique index violated on insert", func(t *testing.T) {
		d.expectTxUntilPosting(unposted())
		d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(&pq.Error{Code: "23505"})
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{ID: runID}, nil)

		_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), runID)
	})
}

func TestNightAuditService_Run_CommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	commitErr := fmt.Errorf("%w: %w", postgres.ErrCommit, errors.New("connection reset"))
	svc := d.service(pgMocks.NewFailingTransactor(commitErr))

	d.expectTxUntilPosting(unposted())
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.bookingRepo.EXPECT().MarkPostedTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(true, nil).Times(3)

	_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestNightAuditService_Run_FailureIsRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(unposted())
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.bookingRepo.EXPECT().MarkPostedTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(false, errors.New("deadlock detected"))

	var failed model.NightAuditRun
	d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run model.NightAuditRun) error {
			failed = run
			return nil
		})
	d.expectListsInvalidated()

	_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.NotContains(t, err.Error(), "deadlock detected", "driver errors stay in the logs and the failed run")

	assert.Equal(t, model.StatusFailed, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "deadlock detected")
	assert.Zero(t, failed.TotalBookingsPosted)
	assert.True(t, failed.TotalRevenue.IsZero())
	assert.Equal(t, 4, failed.RoomsTotal)
}

func TestNightAuditService_Run_BookingChangedConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.expectTxUntilPosting(unposted())
	d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.bookingRepo.EXPECT().MarkPostedTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(true, nil)
	d.bookingRepo.EXPECT().MarkPostedTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(false, nil)

	_, err := svc.Run(context.Background(), dto.RunRequest{AuditDate: "2024-03-10"})

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Contains(t, err.Error(), "BK-002")
}

func TestNightAuditService_Run_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	tests := []struct {
		name string
		req  dto.RunRequest
	}{
		{name: "missing date", req: dto.RunRequest{}},
		{name: "malformed date", req: dto.RunRequest{AuditDate: "10/03/2024"}},
		{name: "future date", req: dto.RunRequest{AuditDate: "2024-03-12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestNightAuditService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	bookings := append(unposted(), bookingModel.Booking{
		ID: "b4", Status: bookingModel.StatusCancelled, CheckInDate: date(10), CheckOutDate: date(11),
		TotalAmount: decimal.RequireFromString("999"),
	})

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{}, nil).Times(2)
	d.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil).Times(2)
	d.occupancy.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshot(), nil).Times(2)

	first, err := svc.Preview(context.Background(), "2024-03-10")
	require.NoError(t, err)

	second, err := svc.Preview(context.Background(), "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.CanRun)
	assert.False(t, first.AlreadyRun)
	assert.Nil(t, first.ExistingRunID)
	assert.Equal(t, 3, first.TotalUnposted)
	assert.Equal(t, "450.00", first.EstimatedRevenue)
	assert.Equal(t, "75.00", first.OccupancyRate)
}

func TestNightAuditService_Preview_AlreadyRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{ID: runID}, nil)
	d.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	d.occupancy.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshot(), nil)

	res, err := svc.Preview(context.Background(), "2024-03-10")

	require.NoError(t, err)
	assert.False(t, res.CanRun)
	assert.True(t, res.AlreadyRun)
	require.NotNil(t, res.ExistingRunID)
	assert.Equal(t, runID, *res.ExistingRunID)
	assert.Equal(t, 0, res.TotalUnposted)
}

func TestNightAuditService_Preview_FutureDate(t *testing.T) {
	tests := []struct {
		name       string
		allow      bool
		wantCanRun bool
	}{
		{name: "future audits disabled", allow: false, wantCanRun: false},
		{name: "future audits allowed", allow: true, wantCanRun: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := newDeps(ctrl)
			d.cfg.NightAudit.AllowFutureDates = tt.allow
			svc := d.service(pgMocks.NewTransactor())

			d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{}, nil)
			d.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			d.occupancy.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshot(), nil)

			res, err := svc.Preview(context.Background(), "2024-03-12")

			require.NoError(t, err)
			assert.False(t, res.AlreadyRun)
			assert.Equal(t, tt.wantCanRun, res.CanRun)
		})
	}
}

func TestNightAuditService_Preview_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	_, err := svc.Preview(context.Background(), "2024-02-30")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestNightAuditService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	t.Run("page size is clamped", func(t *testing.T) {
		runs := []model.NightAuditRun{
			{ID: runID, AuditDate: date(10), Status: model.StatusCompleted, TotalRevenue: decimal.RequireFromString("450")},
		}

		d.expectListGeneration(0)
		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil)

		res, err := svc.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 500})

		require.NoError(t, err)
		assert.Equal(t, 100, res.PageSize)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		require.Len(t, res.Runs, 1)
		assert.Equal(t, "450.00", res.Runs[0].TotalRevenue)
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := svc.List(context.Background(), dto.ListQuery{Page: 0, PageSize: 10})

		assert.ErrorIs(t, err, failure.InvalidPageParam)
	})

	t.Run("repository error", func(t *testing.T) {
		d.expectListGeneration(0)
		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := svc.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 10})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("unreadable generation bypasses the cache", func(t *testing.T) {
		d.cache.EXPECT().Get(gomock.Any(), listGenerationKey, gomock.Any()).Return(errors.New("redis down"))
		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalData)
	})
}

func TestNightAuditService_List_KeyedByGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	var keys []string
	for _, generation := range []int64{1, 2} {
		d.expectListGeneration(generation)
		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string, _ any) error {
				keys = append(keys, key)

				return fmt.Errorf("failed to get cache value: %w", cache.Nil)
			})
		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil)

		_, err := svc.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 10})
		require.NoError(t, err)
	}

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1], "pages cached before a run must not be served after it")
	assert.True(t, strings.HasPrefix(keys[0], "night_audit:list:"), keys[0])
}

func TestNightAuditService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	t.Run("found", func(t *testing.T) {
		d.cache.EXPECT().Get(gomock.Any(), "night_audit:get:"+runID, gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{ID: runID, AuditDate: date(10), Status: model.StatusCompleted}, nil)
		d.cache.EXPECT().Save(gomock.Any(), "night_audit:get:"+runID, gomock.Any(), 60).Return(nil)

		res, err := svc.Get(context.Background(), runID)

		require.NoError(t, err)
		assert.Equal(t, runID, res.ID)
		assert.Equal(t, "2024-03-10", res.AuditDate)
	})

	t.Run("not found", func(t *testing.T) {
		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.NightAuditRun{}, nil)

		_, err := svc.Get(context.Background(), runID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "not-a-uuid")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestNightAuditService_Details(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	run := model.NightAuditRun{
		ID: runID, AuditDate: date(10), Status: model.StatusCompleted,
		TotalBookingsPosted: 2, TotalRevenue: decimal.RequireFromString("250"),
	}
	bookings := []bookingModel.Booking{
		{ID: "b1", RoomNumber: "101", CheckInDate: date(9), CheckOutDate: date(12), TotalAmount: decimal.RequireFromString("250"),
			PostedAmount: decimal.NewNullDecimal(decimal.RequireFromString("250")), PaymentMethod: strPtr("Card")},
		{ID: "b2", RoomNumber: "102", CheckInDate: date(8), CheckOutDate: date(10), TotalAmount: decimal.RequireFromString("80"),
			PostedAmount: decimal.NewNullDecimal(decimal.Zero)},
	}

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(run, nil)
	d.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)

	res, err := svc.Details(context.Background(), runID)

	require.NoError(t, err)
	assert.Equal(t, runID, res.Run.ID)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, 3, res.Bookings[0].Nights)
	assert.Equal(t, "250.00", *res.Bookings[0].PostedAmount)
	assert.Equal(t, "Card", res.Bookings[0].PaymentMethod)
	assert.Equal(t, model.UnknownCategory, res.Bookings[1].PaymentMethod)
	assert.Equal(t, "0.00", *res.Bookings[1].PostedAmount)
}

func TestNightAuditService_IsBookingPosted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDeps(ctrl)
	svc := d.service(pgMocks.NewTransactor())

	t.Run("posted", func(t *testing.T) {
		postedDate := date(10)
		id := runID

		d.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{ID: bookingID, PostedDate: &postedDate, NightAuditRunID: &id}, nil)

		res, err := svc.IsBookingPosted(context.Background(), bookingID)

		require.NoError(t, err)
		assert.True(t, res.IsPosted)
		assert.Equal(t, "2024-03-10", *res.PostedDate)
		assert.Equal(t, runID, *res.NightAuditRunID)
	})

	t.Run("not posted", func(t *testing.T) {
		d.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: bookingID}, nil)

		res, err := svc.IsBookingPosted(context.Background(), bookingID)

		require.NoError(t, err)
		assert.False(t, res.IsPosted)
		assert.Nil(t, res.PostedDate)
	})

	t.Run("unknown booking", func(t *testing.T) {
		d.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := svc.IsBookingPosted(context.Background(), bookingID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
