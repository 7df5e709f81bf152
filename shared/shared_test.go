package shared_test

import (
	"context"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric one", input: "1", expected: boolPtr(true)},
		{name: "numeric zero", input: "0", expected: boolPtr(false)},
		{name: "garbage returns nil", input: "yes please", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToFloat(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToFloat(""))
	assert.Nil(t, shared.ConvertStringToFloat("cheap"))
	assert.Equal(t, floatPtr(149.5), shared.ConvertStringToFloat("149.5"))
	assert.Equal(t, floatPtr(0), shared.ConvertStringToFloat("0"))
}

func TestConvertStringToInt(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("1.5"))
	assert.Equal(t, intPtr(4), shared.ConvertStringToInt("4"))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 10, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
		{name: "single page", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type roomPatch struct {
	Name     string   `db:"name"`
	Price    *float64 `db:"price"`
	Capacity *int     `db:"capacity"`
	Featured *bool    `db:"featured"`
	Ignored  string   `db:"-"`
	Untagged string
}

func TestTransformFields(t *testing.T) {
	featured := false

	result := shared.TransformFields(roomPatch{
		Name:     "Ocean Suite",
		Price:    floatPtr(320),
		Featured: &featured,
		Ignored:  "skip",
		Untagged: "skip",
	}, "admin-id")

	assert.Equal(t, "Ocean Suite", result["name"])
	assert.InDelta(t, 320.0, result["price"], 0.0001)
	assert.Equal(t, false, result["featured"])
	assert.NotContains(t, result, "capacity")
	assert.NotContains(t, result, "-")
	assert.NotContains(t, result, "")
	assert.Equal(t, "admin-id", result[constant.FieldModifiedBy])

	modifiedAt, ok := result[constant.FieldModifiedAt].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), modifiedAt, time.Minute)
	assert.Len(t, result, 5)
}

func TestTransformFieldsEmptyPatch(t *testing.T) {
	result := shared.TransformFields(roomPatch{}, "admin-id")

	assert.Len(t, result, 2)
	assert.Contains(t, result, constant.FieldModifiedAt)
	assert.Contains(t, result, constant.FieldModifiedBy)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("room-1", "id", "rooms")

	require.Len(t, result.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "room-1",
		Operator: dto.FilterOperatorEq,
		Table:    "rooms",
	}, result.Filters[0])
}

func TestFilterByIDs(t *testing.T) {
	result := shared.FilterByIDs([]string{"a", "b"}, "id", "customers")

	require.Len(t, result.Filters, 1)
	filter, ok := result.Filters[0].(dto.Filter)
	require.True(t, ok)
	assert.Equal(t, dto.FilterOperatorIn, filter.Operator)
	assert.Equal(t, []string{"a", "b"}, filter.Value)
	assert.Equal(t, "customers", filter.Table)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "booking:email:a@b.com:x", shared.BuildCacheKey("booking:email", "a@b.com", "x"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc}
	suite := dto.FilterGroup{Filters: []any{dto.Filter{Field: "type", Value: "suite", Operator: dto.FilterOperatorEq}}}
	villa := dto.FilterGroup{Filters: []any{dto.Filter{Field: "type", Value: "villa", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, suite)
	again := shared.BuildCacheKeyWithQuery("room:gets", params, suite)
	other := shared.BuildCacheKeyWithQuery("room:gets", params, villa)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:gets:1:10:created_at:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(t.Context(), redisCache, "room:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "room:get*").Return(assert.AnError)
	shared.InvalidateCaches(t.Context(), redisCache, "room:get")
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestParseDate(t *testing.T) {
	require.NoError(t, timezone.Init("UTC"))

	day, err := shared.ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.January, day.Month())
	assert.Equal(t, 10, day.Day())

	stamp, err := shared.ParseDate("2025-01-10T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, stamp.UTC().Hour())

	_, err = shared.ParseDate("2025-01-10T23:00:00-05:00")
	require.ErrorIs(t, err, shared.ErrForeignOffset)

	_, err = shared.ParseDate("10/01/2025")
	assert.Error(t, err)

	_, err = shared.ParseDate("")
	assert.Error(t, err)
}

func TestParseDate_AppZoneOffset(t *testing.T) {
	require.NoError(t, timezone.Init("America/New_York"))
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	stamp, err := shared.ParseDate("2025-01-10T23:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", stamp.Format(time.DateOnly))

	summer, err := shared.ParseDate("2025-07-10T23:00:00-04:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-10", summer.Format(time.DateOnly))

	_, err = shared.ParseDate("2025-07-10T23:00:00-05:00")
	require.ErrorIs(t, err, shared.ErrForeignOffset)
}

func TestLeaseCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Lease(gomock.Any(), "room:get:r1").Return("token", nil)
	assert.Equal(t, "token", shared.LeaseCache(t.Context(), redisCache, "room:get:r1"))

	redisCache.EXPECT().Lease(gomock.Any(), "room:get:r1").Return("", assert.AnError)
	assert.Empty(t, shared.LeaseCache(t.Context(), redisCache, "room:get:r1"))
}

func TestFillCache(t *testing.T) {
	t.Run("fills with the lease", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Fill(gomock.Any(), "room:get:r1", "token", "value", 60).Return(true, nil)

		shared.FillCache(t.Context(), redisCache, "room:get:r1", "token", "value", 60)
	})

	t.Run("no lease skips the fill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		shared.FillCache(t.Context(), redisCache, "room:get:r1", "", "value", 60)
	})

	t.Run("invalidated key is left alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Fill(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		shared.FillCache(t.Context(), redisCache, "room:get:r1", "token", "value", 60)
	})

	t.Run("fill survives a cancelled request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		redisCache.EXPECT().Fill(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string, _ any, _ int) (bool, error) {
				require.NoError(t, ctx.Err())

				return true, nil
			})

		shared.FillCache(ctx, redisCache, "room:get:r1", "token", "value", 60)
	})
}
