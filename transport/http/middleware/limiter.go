package middleware

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownClient     = "unknown"
)

// RateLimit caps requests per client and user agent inside a fixed window. Cache failures fail open.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	settings := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !settings.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			count, err := a.cache.Incr(r.Context(), key, settings.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(settings.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(settings.MaxRequests)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(settings.WindowSeconds))

			if count > int64(settings.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}

	return unknownClient
}

// clientIP reads RemoteAddr, which chi's RealIP middleware has already replaced with the proxied address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return unknownClient
		}

		return r.RemoteAddr
	}

	return host
}
