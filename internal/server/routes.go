package server

import (
	"ordersvc/internal/handler"
	"ordersvc/internal/metrics"
	"ordersvc/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func (s *Server) registerRoutes(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(s.log))
	if s.deps.Metrics != nil {
		e.Use(middleware.Metrics(s.deps.Metrics))
	}
	e.Use(middleware.ReadinessGuard(s.ready.Load))

	handler.NewHealthHandler(s.deps.Health).RegisterRoutes(e)
	handler.NewOrderHandler(s.deps.Orders).RegisterRoutes(e)

	if s.deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(s.deps.Gatherer)))
	}
}
