package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"qrorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 管理画面の注文API（/orders）
type AdminOrderHandler struct {
	uc  *usecase.AdminOrderUsecase
	log *zap.Logger
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, log *zap.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, log: log}
}

type OrderItemResponse struct {
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int64       `json:"quantity"`
	Price     json.Number `json:"price"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	MerchantID int64               `json:"merchant_id"`
	Customer   string              `json:"customer"`
	Total      json.Number         `json:"total"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items"`
}

// mwは認証などのミドルウェア（無ければ公開）
func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	g := e.Group("/orders", mw...)

	g.GET("", h.list)
	g.POST("/:id/complete", h.complete)
	g.DELETE("/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	var in usecase.OrderListInput

	//不正な値は条件なしとして扱う
	if id, ok := parsePositiveInt(c.QueryParam("merchantId")); ok {
		in.MerchantID = &id
	}
	if v := c.QueryParam("maxAgeMinutes"); v != "" {
		if m, err := strconv.ParseFloat(v, 64); err == nil {
			in.MaxAgeMinutes = &m
		}
	}

	views, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		items := make([]OrderItemResponse, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, OrderItemResponse{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     money(it.Price),
			})
		}
		out = append(out, OrderResponse{
			ID:         v.ID,
			MerchantID: v.MerchantID,
			Customer:   v.Customer,
			Total:      money(v.Total),
			Status:     v.Status,
			CreatedAt:  v.CreatedAt,
			Items:      items,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) complete(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkPaid(c.Request().Context(), orderID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), orderID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
