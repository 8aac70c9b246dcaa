package repository

import (
	"context"
	"time"

	"qrorder/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文一覧の絞り込み（どちらも任意、AND条件）
type OrderListFilter struct {
	MerchantID  *int64
	CreatedFrom *time.Time
}

// orders × order_items × products の結合結果1行
type OrderLineRow struct {
	OrderID     int64
	MerchantID  int64
	Customer    *string
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
	ItemID      int64
	ProductID   int64
	ProductName *string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	//新しい順（created_at desc, id desc）、明細は登録順
	ListWithItems(ctx context.Context, f OrderListFilter) ([]OrderLineRow, error)
}
