package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"pms/infras/otel"
	bookingModel "pms/internal/domains/booking/model"
	bookingRepository "pms/internal/domains/booking/repository"
	"pms/internal/domains/occupancy/model"
	"pms/internal/domains/occupancy/model/dto"
	"pms/internal/domains/occupancy/resolver"
	roomModel "pms/internal/domains/room/model"
	roomRepository "pms/internal/domains/room/repository"
	"pms/shared/constant"
	gDto "pms/shared/dto"
	"pms/shared/failure"
	"pms/shared/validator"

	"github.com/rs/zerolog/log"
)

// Occupancy derives room state on demand. Results depend on asOf and are never cached.
type Occupancy interface {
	Board(ctx context.Context, asOf time.Time) (dto.BoardResponse, error)
	Resolve(ctx context.Context, roomID string, asOf time.Time) (dto.RoomStatusResponse, error)
	LateCheckouts(ctx context.Context, asOf time.Time) (dto.LateCheckoutsResponse, error)
	Anomalies(ctx context.Context, asOf time.Time) (dto.AnomalyReportResponse, error)
	Snapshot(ctx context.Context, asOf time.Time) (model.Snapshot, error)
}

type serviceImpl struct {
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	otel        otel.Otel
}

func New(roomRepo roomRepository.Room, bookingRepo bookingRepository.Booking, otel otel.Otel) Occupancy {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Board(ctx context.Context, asOf time.Time) (res dto.BoardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupancy.Board")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	resolutions, _, err := s.resolveAll(ctx, asOf)
	if err != nil {
		return res, err
	}

	res.FromModels(asOf, resolutions, resolver.Summarize(resolutions))

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, roomID string, asOf time.Time) (res dto.RoomStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupancy.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(roomID, "uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, roomRepository.ByID(roomID))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(roomModel.EntityName) // nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingRepository.ActiveAsOf(asOf, room.ID))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get bookings of room")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	resolution := resolver.Resolve(room, bookings, asOf)
	logWarnings(resolution.Warnings)

	res.FromModel(resolution)

	return res, nil
}

func (s *serviceImpl) LateCheckouts(ctx context.Context, asOf time.Time) (res dto.LateCheckoutsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupancy.LateCheckouts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	resolutions, _, err := s.resolveAll(ctx, asOf)
	if err != nil {
		return res, err
	}

	res.FromModels(asOf, resolver.DetectLateCheckouts(resolutions, asOf))

	return res, nil
}

func (s *serviceImpl) Anomalies(ctx context.Context, asOf time.Time) (res dto.AnomalyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupancy.Anomalies")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	resolutions, bookings, err := s.resolveAll(ctx, asOf)
	if err != nil {
		return res, err
	}

	res.FromModel(model.Report{
		AsOf:              asOf,
		LateCheckouts:     resolver.DetectLateCheckouts(resolutions, asOf),
		NoShows:           resolver.DetectNoShows(bookings, asOf),
		IntegrityWarnings: resolver.CollectWarnings(resolutions),
	})

	return res, nil
}

func (s *serviceImpl) Snapshot(ctx context.Context, asOf time.Time) (res model.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupancy.Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	resolutions, _, err := s.resolveAll(ctx, asOf)
	if err != nil {
		return res, err
	}

	return resolver.Summarize(resolutions), nil
}

func (s *serviceImpl) resolveAll(ctx context.Context, asOf time.Time) ([]model.Resolution, []bookingModel.Booking, error) {
	rooms, err := s.roomRepo.GetAll(ctx, roomRepository.OrderByRoomNumber(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingRepository.ActiveAsOf(asOf))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return nil, nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	resolutions := resolver.ResolveAll(rooms, bookings, asOf)
	logWarnings(resolver.CollectWarnings(resolutions))

	return resolutions, bookings, nil
}

func logWarnings(warnings []model.IntegrityWarning) {
	for _, warning := range warnings {
		log.Warn().
			Str("room_id", warning.RoomID).
			Str("rule", string(warning.Rule)).
			Strs("booking_ids", warning.BookingIDs).
			Msg(warning.Message)
	}
}
