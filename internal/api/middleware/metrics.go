package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/metrics"
)

// MetricsMiddleware records the request counter and latency histogram.
// The path label uses the route template, not the raw URI, to keep
// cardinality bounded.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			method := c.Request().Method
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
