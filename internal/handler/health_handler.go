package handler

import (
	"context"
	"net/http"

	"ordersvc/internal/usecase"

	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	Check(ctx context.Context) (usecase.HealthOutput, error)
}

type HealthHandler struct {
	uc HealthChecker
}

func NewHealthHandler(uc HealthChecker) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)
}

// GET /health
func (h *HealthHandler) health(c echo.Context) error {
	out, err := h.uc.Check(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
