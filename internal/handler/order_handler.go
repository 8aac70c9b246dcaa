package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"qrorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// POST /merchant （注文作成）
type OrderHandler struct {
	uc  *usecase.OrderUsecase
	log *zap.Logger
}

func NewOrderHandler(uc *usecase.OrderUsecase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// 価格・合計のフィールドは持たない（送られてきても読まない）
type OrderCreateRequest struct {
	MerchantID numberField       `json:"merchantId" validate:"required"`
	Customer   *string           `json:"customer" validate:"omitempty,max=255"`
	Items      []CartLineRequest `json:"items" validate:"required,min=1"`
}

// productIdが無ければidを使う（旧クライアントの形）
type CartLineRequest struct {
	ProductID numberField `json:"productId"`
	ID        numberField `json:"id"`
	Quantity  numberField `json:"quantity"`
}

type OrderCreateResponse struct {
	OrderID int64       `json:"orderId"`
	Success bool        `json:"success"`
	Total   json.Number `json:"total"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/merchant", h.create)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "merchantId & items are required"})
	}

	in, err := req.toInput()
	if err != nil {
		return writeError(c, h.log, err)
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{
		OrderID: out.OrderID,
		Success: true,
		Total:   money(out.Total),
	})
}

// 型のゆるいbodyをusecaseの入力へ。ここで数値にできないものはInvalidInput
func (req OrderCreateRequest) toInput() (usecase.PlaceOrderInput, error) {
	merchantID, ok := req.MerchantID.positiveInt()
	if !ok {
		return usecase.PlaceOrderInput{}, usecase.InvalidInputError("invalid merchantId: " + req.MerchantID.raw)
	}

	lines := make([]usecase.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		rawID := it.ProductID
		if !rawID.present() {
			rawID = it.ID
		}
		productID, ok := rawID.positiveInt()
		if !ok {
			return usecase.PlaceOrderInput{}, usecase.InvalidInputError("invalid product id: " + rawID.raw)
		}

		qty, ok := it.Quantity.positiveInt()
		if !ok {
			return usecase.PlaceOrderInput{}, usecase.InvalidInputError(
				fmt.Sprintf("invalid quantity for productId=%d: %s", productID, it.Quantity.raw),
			)
		}
		lines = append(lines, usecase.CartLine{ProductID: productID, Quantity: qty})
	}

	return usecase.PlaceOrderInput{
		MerchantID: merchantID,
		Customer:   req.Customer,
		Items:      lines,
	}, nil
}
