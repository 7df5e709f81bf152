package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	ComputeStats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// ComputeStats runs the counts independently. The figures are not taken from a single snapshot.
func (s *serviceImpl) ComputeStats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComputeStats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, constant.CacheKeyDashboardStats, &res); err == nil {
		log.Debug().Msg("cache hit for dashboard stats")

		return res, nil
	}

	lease := shared.LeaseCache(ctx, s.cache, constant.CacheKeyDashboardStats)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.TotalRooms, err = s.countRooms(gctx, gDto.FilterGroup{})

		return err
	})

	group.Go(func() (err error) {
		res.AvailableRooms, err = s.countRooms(gctx, eq(roomModel.FieldAvailable, true))

		return err
	})

	group.Go(func() (err error) {
		res.TotalBookings, err = s.countBookings(gctx, gDto.FilterGroup{})

		return err
	})

	group.Go(func() (err error) {
		res.PendingBookings, err = s.countBookings(gctx, eq(bookingModel.FieldStatus, string(bookingModel.StatusPending)))

		return err
	})

	group.Go(func() (err error) {
		res.ConfirmedBookings, err = s.countBookings(gctx, eq(bookingModel.FieldStatus, string(bookingModel.StatusConfirmed)))

		return err
	})

	group.Go(func() (err error) {
		res.TotalRevenue, err = s.bookingRepo.Sum(gctx, bookingModel.FieldTotalPrice, revenueFilter())
		if err != nil {
			log.Error().Err(err).Msg("failed to sum booking revenue")

			return fmt.Errorf("failed to sum booking revenue: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return dto.StatsResponse{}, err //nolint:wrapcheck
	}

	shared.FillCache(ctx, s.cache, constant.CacheKeyDashboardStats, lease, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) countRooms(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	count, err := s.roomRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	return count, nil
}

func (s *serviceImpl) countBookings(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	count, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func eq(field string, value any) gDto.FilterGroup {
	return gDto.And(gDto.Eq(field, value))
}

func revenueFilter() gDto.FilterGroup {
	statuses := make([]string, len(bookingModel.RevenueStatuses))
	for i, status := range bookingModel.RevenueStatuses {
		statuses[i] = string(status)
	}

	return gDto.And(gDto.In(bookingModel.FieldStatus, statuses))
}
