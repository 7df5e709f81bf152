package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToFloat(value string) *float64 {
	if value == "" {
		return nil
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to float")

		return nil
	}

	return &floatValue
}

func ConvertStringToInt(value string) *int {
	if value == "" {
		return nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int")

		return nil
	}

	return &intValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db tagged fields of a struct into a map of updated fields.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func FilterByIDs(ids []string, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    ids,
				Operator: dto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// ErrForeignOffset rejects timestamps whose offset differs from the application zone.
var ErrForeignOffset = errors.New("timestamp offset does not match the application timezone")

// ParseDate accepts a calendar date in the application timezone, or an RFC3339
// timestamp carrying the application zone's offset at that instant. Stays are
// rendered back as calendar dates in that zone, so other offsets would shift the day.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := timezone.Parse(constant.DateOnlyFormat, value); err == nil {
		return parsed, nil
	}

	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	local := timezone.ToAppTime(parsed)

	_, offset := parsed.Zone()
	if _, appOffset := local.Zone(); offset != appOffset {
		return time.Time{}, fmt.Errorf("%w: %q", ErrForeignOffset, value)
	}

	return local, nil
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a stable key from the query params and a hash of the filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	hasher := fnv.New64a()

	raw, err := json.Marshal(filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal filter for cache key")
	}

	_, _ = hasher.Write(raw)

	return fmt.Sprintf("%s:%d:%d:%s:%s:%x", prefix, params.Page, params.Limit, params.SortBy, params.SortDir, hasher.Sum64())
}

// InvalidateCaches clears every key under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// LeaseCache takes the fill lease for key before the source of truth is read.
// It returns "" when the cache is unavailable, which disables the fill.
func LeaseCache(ctx context.Context, redisCache cache.RedisCache, key string) string {
	lease, err := redisCache.Lease(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to lease cache key")

		return ""
	}

	return lease
}

// FillCache caches value under key unless key was invalidated since the lease was taken.
func FillCache(ctx context.Context, redisCache cache.RedisCache, key, lease string, value any, ttl int) {
	if lease == "" {
		return
	}

	filled, err := redisCache.Fill(context.WithoutCancel(ctx), key, lease, value, ttl)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to fill cache")

		return
	}

	if !filled {
		log.Debug().Str("key", key).Msg("cache invalidated during read, fill skipped")
	}
}
