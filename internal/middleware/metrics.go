package middleware

import (
	"strconv"
	"time"

	"ordersvc/internal/metrics"

	"github.com/labstack/echo/v4"
)

// ルート（/orders/:id など）単位でリクエスト数とレイテンシを記録する。
// エラーはそのまま返すので外側のRequestLoggerでも記録される
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				//ステータスを確定させるため先にエラーハンドラを通す
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			m.Requests.WithLabelValues(route, c.Request().Method, status).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}
