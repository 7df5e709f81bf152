package service_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	rooms    *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	svc      service.Dashboard
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		rooms:    roomMocks.NewMockRoom(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Lease(gomock.Any(), constant.CacheKeyDashboardStats).Return("lease", nil).AnyTimes()
	f.cache.EXPECT().Fill(gomock.Any(), constant.CacheKeyDashboardStats, "lease", gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()

	f.svc = service.New(f.rooms, f.bookings, &config.Config{}, f.cache, mocks.NewOtel())

	return f
}

// whereOf renders a filter group so counts can be told apart.
func whereOf(filter gDto.FilterGroup) string {
	where, _ := filter.GetWhereClause()

	return where
}

func (f fixture) expectCounts(totalRooms, availableRooms int, bookingCounts map[string]int) {
	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			if whereOf(filter) == "" {
				return totalRooms, nil
			}

			return availableRooms, nil
		}).Times(2)

	f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			status, _ := args[bookingModel.FieldStatus].(string)

			return bookingCounts[status], nil
		}).Times(3)
}

func TestDashboardService_ComputeStats(t *testing.T) {
	t.Run("aggregates counts and revenue", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), constant.CacheKeyDashboardStats, gomock.Any()).Return(cache.Nil)

		f.expectCounts(10, 7, map[string]int{"": 12, "pending": 3, "confirmed": 5})
		f.bookings.EXPECT().Sum(gomock.Any(), bookingModel.FieldTotalPrice, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (float64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "confirmed", args["status_0"])
				assert.Equal(t, "completed", args["status_1"])
				assert.Len(t, args, 2)

				return 2340.5, nil
			})

		res, err := f.svc.ComputeStats(t.Context())
		require.NoError(t, err)

		assert.Equal(t, dto.StatsResponse{
			TotalRooms:        10,
			AvailableRooms:    7,
			TotalBookings:     12,
			PendingBookings:   3,
			ConfirmedBookings: 5,
			TotalRevenue:      2340.5,
		}, res)
	})

	t.Run("no revenue bookings", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		f.expectCounts(2, 2, map[string]int{"": 1, "pending": 1})
		f.bookings.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, nil)

		res, err := f.svc.ComputeStats(t.Context())
		require.NoError(t, err)
		assert.Zero(t, res.TotalRevenue)
		assert.Equal(t, 1, res.PendingBookings)
		assert.Zero(t, res.ConfirmedBookings)
	})

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), constant.CacheKeyDashboardStats, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				stats, ok := dest.(*dto.StatsResponse)
				require.True(t, ok)
				stats.TotalRooms = 4

				return nil
			})

		res, err := f.svc.ComputeStats(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalRooms)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, assert.AnError).AnyTimes()
		f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		f.bookings.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, nil).AnyTimes()

		_, err := f.svc.ComputeStats(t.Context())
		assert.ErrorIs(t, err, assert.AnError)
	})
}
