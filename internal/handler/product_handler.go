package handler

import (
	"encoding/json"
	"net/http"

	"qrorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GET /merchant （QRメニューの商品一覧）
type ProductHandler struct {
	uc  *usecase.ProductUsecase
	log *zap.Logger
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

type ProductResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/merchant", h.list)
}

func (h *ProductHandler) list(c echo.Context) error {
	merchantID, ok := parsePositiveInt(c.QueryParam("merchantId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid merchantId"})
	}

	products, err := h.uc.ListActiveProducts(c.Request().Context(), merchantID)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{ID: p.ID, Name: p.Name, Price: money(p.Price)})
	}
	return c.JSON(http.StatusOK, out)
}
