package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"hotel/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit  = "limiter"
	authPathPrefix     = "/v1/auth/"
	bucketGeneral      = "api"
	bucketAuth         = "auth"
	headerRetryAfter   = "Retry-After"
	defaultWindowSecs  = 60
	unknownUserAgent   = "unknown"
)

// RateLimit counts requests per client in fixed windows kept in redis.
// Auth endpoints get their own, usually smaller, budget. Cache failures let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			window := limits.WindowSeconds
			if window <= 0 {
				window = defaultWindowSecs
			}

			bucket, maxReqs := bucketGeneral, limits.MaxRequests
			if strings.HasPrefix(r.URL.Path, authPathPrefix) && limits.AuthMaxRequests > 0 {
				bucket, maxReqs = bucketAuth, limits.AuthMaxRequests
			}

			now := timezone.Now().Unix()
			windowID := now / int64(window)
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, bucket, a.getClientIP(r), a.getUA(r), strconv.FormatInt(windowID, 10))

			var count int

			err := a.cache.Get(r.Context(), cacheKey, &count)

			switch {
			case cache.IsMiss(err):
				count = 1
			case err != nil:
				log.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			default:
				count++
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

			if count > maxReqs {
				resetIn := (windowID+1)*int64(window) - now
				w.Header().Set(headerRetryAfter, strconv.FormatInt(resetIn, 10))

				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, count, window); err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable")
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
