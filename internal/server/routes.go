package server

import (
	"context"
	"net/http"

	"qrorder/internal/handler"
	"qrorder/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Products    *handler.ProductHandler
	Orders      *handler.OrderHandler
	AdminOrders *handler.AdminOrderHandler
	// DB疎通確認
	Ping func(ctx context.Context) error
}

func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", func(c echo.Context) error {
		if h.Ping != nil {
			if err := h.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Error: "db unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//QRメニュー側（公開）
	h.Products.RegisterRoutes(e)
	h.Orders.RegisterRoutes(e)

	//管理画面側（JWT_SECRETがあれば管理者のみ）
	h.AdminOrders.RegisterRoutes(e, middleware.AdminOnly(jwtSecret)...)
}
