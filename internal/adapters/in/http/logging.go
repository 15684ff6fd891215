package http

import (
	"net/url"
	"slices"
	"strings"

	"orderdesk/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// sensitiveQueryParams carry access codes.
var sensitiveQueryParams = []string{"code"}

// requestLogger writes one logrus entry per request. Access codes in the query
// string and tracking tokens in the path are masked.
func requestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRoutePath: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        MaskURI(v.URI),
				"route":      v.RoutePath,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Info("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

// MaskURI hides credentials in a request URI: the code query parameter and
// the token segment of tracking URLs.
func MaskURI(uri string) string {
	path, rawQuery, hasQuery := strings.Cut(uri, "?")

	if token, ok := strings.CutPrefix(path, trackPathPrefix); ok && token != "" {
		path = trackPathPrefix + actor.Mask(token)
	}
	if !hasQuery {
		return path
	}

	pairs := strings.Split(rawQuery, "&")
	for i, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if !slices.Contains(sensitiveQueryParams, key) {
			continue
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		pairs[i] = key + "=" + actor.Mask(value)
	}
	return path + "?" + strings.Join(pairs, "&")
}
