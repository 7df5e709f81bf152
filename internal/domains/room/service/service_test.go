package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Lease(gomock.Any(), gomock.Any()).Return("lease", nil).AnyTimes()
	f.cache.EXPECT().Fill(gomock.Any(), gomock.Any(), "lease", gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) cacheMiss() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func price(v float64) *float64 {
	return &v
}

func sampleRoom() model.Room {
	return model.Room{
		ID:          "room-1",
		Name:        "Garden Double",
		Type:        model.TypeDouble,
		Description: "Quiet room facing the garden",
		Price:       180,
		Capacity:    2,
		Amenities:   pq.StringArray{"wifi"},
		Images:      pq.StringArray{"https://cdn.hotel.test/room/a.png"},
		Available:   true,
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateRoomRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "creates an available room by default",
			req: dto.CreateRoomRequest{
				Name: " Sea Suite ", Type: model.TypeSuite, Description: "Top floor",
				Price: price(320), Capacity: 3,
			},
			setup: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.NotEmpty(t, room.ID)
					assert.Equal(t, "Sea Suite", room.Name)
					assert.True(t, room.Available)
					assert.False(t, room.Featured)
					assert.Equal(t, "admin-1", room.CreatedBy)

					return nil
				})
			},
		},
		{
			name:     "missing price",
			req:      dto.CreateRoomRequest{Name: "A", Type: model.TypeSingle, Description: "d", Capacity: 1},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative price",
			req:      dto.CreateRoomRequest{Name: "A", Type: model.TypeSingle, Description: "d", Price: price(-1), Capacity: 1},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero capacity",
			req:      dto.CreateRoomRequest{Name: "A", Type: model.TypeSingle, Description: "d", Price: price(10)},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown type",
			req:      dto.CreateRoomRequest{Name: "A", Type: "castle", Description: "d", Price: price(10), Capacity: 1},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "store failure",
			req:  dto.CreateRoomRequest{Name: "A", Type: model.TypeSingle, Description: "d", Price: price(0), Capacity: 1},
			setup: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(adminContext(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.True(t, res.Available)
			assert.Equal(t, []string{}, res.Amenities)
			assert.Equal(t, []string{}, res.Images)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("reads from store newest first on cache miss", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		filter := dto.RoomFilter{Type: "suite", MinPrice: price(100), MaxPrice: price(400)}

		f.repo.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, filter.ToFilterGroup()).
			Return([]model.Room{sampleRoom()}, nil)

		res, err := f.svc.GetAll(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "room-1", res[0].ID)
	})

	t.Run("serves cached list", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				rooms, ok := value.(*[]dto.RoomResponse)
				require.True(t, ok)
				*rooms = []dto.RoomResponse{{ID: "cached"}}

				return nil
			})

		res, err := f.svc.GetAll(context.Background(), dto.RoomFilter{})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "cached", res[0].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := f.svc.GetAll(context.Background(), dto.RoomFilter{})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestRoomFilter_ToFilterGroup(t *testing.T) {
	available := true

	group := dto.RoomFilter{MinPrice: price(50), MaxPrice: price(90), Available: &available}.ToFilterGroup()

	require.Len(t, group.Filters, 3)
	assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)

	where, args := group.GetWhereClause()
	assert.Equal(t, "(price >= :min_price AND price <= :max_price AND available = :available)", where)
	assert.Equal(t, map[string]any{"min_price": 50.0, "max_price": 90.0, "available": true}, args)

	empty := dto.RoomFilter{}.ToFilterGroup()
	assert.Empty(t, empty.Filters)
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)

		res, err := f.svc.Get(context.Background(), "room-1")
		require.NoError(t, err)
		assert.Equal(t, "Garden Double", res.Name)
		assert.Equal(t, []string{"wifi"}, res.Amenities)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("applies partial update and returns fresh room", func(t *testing.T) {
		f := newFixture(t)

		updated := sampleRoom()
		updated.Price = 200

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.InDelta(t, 200.0, fields[model.FieldPrice], 0.0001)
					assert.NotContains(t, fields, model.FieldName)
					assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)

		res, err := f.svc.Update(adminContext(), dto.UpdateRoomRequest{Price: price(200)}, "room-1")
		require.NoError(t, err)
		assert.InDelta(t, 200.0, res.Price, 0.0001)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(adminContext(), dto.UpdateRoomRequest{Name: "x"}, "missing")
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("invalid capacity", func(t *testing.T) {
		f := newFixture(t)
		zero := 0

		_, err := f.svc.Update(adminContext(), dto.UpdateRoomRequest{Capacity: &zero}, "room-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("deletes existing room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminContext(), "room-1"))
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.True(t, failure.IsNotFound(f.svc.Delete(adminContext(), "missing")))
	})
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error {
	return nil
}

func imageUpload(contentType string) dto.UploadImageRequest {
	return dto.UploadImageRequest{
		Image: &multipart.FileHeader{
			Filename: "view.PNG",
			Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
			Size:     4,
		},
		ImageFile: memFile{bytes.NewReader([]byte("\x89PNG"))},
	}
}

func TestRoomService_UploadImage(t *testing.T) {
	const url = "https://cdn.hotel.test/room/new.png"

	t.Run("appends uploaded url", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, fileName, _ string, _ any) (string, error) {
				assert.Contains(t, fileName, ".png")

				return url, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.StringArray{"https://cdn.hotel.test/room/a.png", url}, fields[model.FieldImages])

				return nil
			})

		res, err := f.svc.UploadImage(adminContext(), imageUpload("image/png"), "room-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.hotel.test/room/a.png", url}, res.Images)
	})

	t.Run("removes object when the room update fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(url, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.s3.EXPECT().ObjectKeyFromURL(url).Return("room/new.png")
		f.s3.EXPECT().Delete(gomock.Any(), "room/new.png").Return(nil)

		_, err := f.svc.UploadImage(adminContext(), imageUpload("image/png"), "room-1")
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("rejects non image content", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UploadImage(adminContext(), imageUpload("application/pdf"), "room-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "image must be one of image/jpeg image/png image/webp", err.Error())
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UploadImage(adminContext(), dto.UploadImageRequest{}, "room-1")
		assert.Equal(t, "image is required", err.Error())
	})
}

func TestRoomService_Quote(t *testing.T) {
	t.Run("prices the stay", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)

		res, err := f.svc.Quote(context.Background(), "room-1", "2025-01-10", "2025-01-12")
		require.NoError(t, err)
		assert.Equal(t, "room-1", res.RoomID)
		assert.Equal(t, 2, res.Nights)
		assert.InDelta(t, 360.0, res.TotalPrice, 0.0001)
	})

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "same day", checkIn: "2025-01-10", checkOut: "2025-01-10"},
		{name: "reversed", checkIn: "2025-01-12", checkOut: "2025-01-10"},
		{name: "bad check in", checkIn: "tomorrow", checkOut: "2025-01-10"},
		{name: "bad check out", checkIn: "2025-01-10", checkOut: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Quote(context.Background(), "room-1", tt.checkIn, tt.checkOut)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
