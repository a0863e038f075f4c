package handler

import (
	"net/http"

	"ordersvc/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラーは {"detail": "..."} で返す
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Detail: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal error"})
}
