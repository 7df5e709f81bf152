package seed_test

import (
	"testing"

	"hotel/config"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingMocks "hotel/internal/domains/booking/service/mocks"
	customerDto "hotel/internal/domains/customer/model/dto"
	customerMocks "hotel/internal/domains/customer/service/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomMocks "hotel/internal/domains/room/mocks"
	userModel "hotel/internal/domains/user/model"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/seed"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cfg      *config.Config
	users    *userMocks.MockUser
	rooms    *roomMocks.MockRoom
	customer *customerMocks.MockCustomer
	booking  *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	seeder   *seed.Seeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		cfg:      &config.Config{},
		users:    userMocks.NewMockUser(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		customer: customerMocks.NewMockCustomer(ctrl),
		booking:  bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cfg.Seed.AdminName = "Admin User"
	f.cfg.Seed.AdminEmail = " Admin@Hotel.com "
	f.cfg.Seed.AdminPassword = "admin123"

	f.seeder = seed.New(f.cfg, f.users, f.rooms, f.customer, f.booking, f.cache)

	return f
}

func (f *fixture) customersUpserted() {
	f.customer.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req customerDto.UpsertCustomerRequest) (customerDto.CustomerResponse, error) {
			return customerDto.CustomerResponse{ID: "c-" + req.Email, Email: req.Email}, nil
		}).Times(3)
}

func TestRun_EmptyStore(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, user userModel.User) error {
			assert.Equal(t, "admin@hotel.com", user.Email)
			assert.Equal(t, constant.RoleAdmin, user.Role)
			assert.True(t, user.Active)
			assert.NoError(t, password.Verify("admin123", user.Password))

			return nil
		})

	var inserted []roomModel.Room

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.rooms.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, rooms []roomModel.Room) error {
			inserted = rooms

			return nil
		})
	f.cache.EXPECT().Clear(gomock.Any(), constant.CacheKeyRoomPrefix+constant.Asterix).Return(nil)
	f.cache.EXPECT().Delete(gomock.Any(), constant.CacheKeyDashboardStats).Return(nil)

	f.customersUpserted()

	var created []bookingDto.CreateBookingRequest

	f.booking.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
			created = append(created, req)

			return bookingDto.BookingResponse{ID: "b"}, nil
		}).Times(3)

	require.NoError(t, f.seeder.Run(t.Context()))

	require.Len(t, inserted, 10)
	for _, room := range inserted {
		assert.True(t, room.Type.Valid(), room.Name)
		assert.True(t, room.Available, room.Name)
		assert.NotEmpty(t, room.ID)
	}

	require.Len(t, created, 3)
	assert.Equal(t, inserted[1].ID, created[0].RoomID)
	assert.Equal(t, "c-john.doe@example.com", created[0].CustomerID)
	assert.Equal(t, bookingModel.StatusConfirmed, created[0].Status)
	// three nights at 180
	assert.InDelta(t, 540.0, *created[0].TotalPrice, 0)
	assert.Equal(t, bookingModel.StatusPending, created[1].Status)
	assert.Equal(t, inserted[3].ID, created[2].RoomID)
}

func TestRun_AlreadySeeded(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil)
	f.customersUpserted()

	require.NoError(t, f.seeder.Run(t.Context()))
}

func TestRun_AdminLookupFails(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, assert.AnError)

	err := f.seeder.Run(t.Context())

	require.ErrorIs(t, err, assert.AnError)
}

func TestRun_RoomInsertFails(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.rooms.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := f.seeder.Run(t.Context())

	require.ErrorIs(t, err, assert.AnError)
}
