package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"qrorder/internal/domain/model"
	repo "qrorder/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理画面向け：注文一覧・支払済み・削除
type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	clock  Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, clock: clock}
}

// 一覧の絞り込み（nilなら条件なし）
type OrderListInput struct {
	MerchantID    *int64
	MaxAgeMinutes *float64
}

type OrderItemView struct {
	ProductID int64
	Name      string
	Quantity  int64
	Price     decimal.Decimal
}

type OrderView struct {
	ID         int64
	MerchantID int64
	Customer   string
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
	Items      []OrderItemView
}

func (u *AdminOrderUsecase) List(ctx context.Context, in OrderListInput) ([]OrderView, error) {
	var f repo.OrderListFilter

	//不正な値・0以下の条件は無視する
	if in.MerchantID != nil && *in.MerchantID > 0 {
		id := *in.MerchantID
		f.MerchantID = &id
	}
	if m := in.MaxAgeMinutes; m != nil && *m > 0 && !math.IsInf(*m, 0) && !math.IsNaN(*m) {
		from := u.clock.Now().Add(-time.Duration(*m * float64(time.Minute)))
		f.CreatedFrom = &from
	}

	rows, err := u.orders.ListWithItems(ctx, f)
	if err != nil {
		return []OrderView{}, storageError(err)
	}
	return groupOrderRows(rows), nil
}

// 結合結果を注文ごとにまとめる。注文は最初に出た順、明細は行の順。
func groupOrderRows(rows []repo.OrderLineRow) []OrderView {
	views := make([]OrderView, 0)
	index := make(map[int64]int)

	for _, r := range rows {
		i, ok := index[r.OrderID]
		if !ok {
			status := r.Status
			if status == "" {
				status = string(model.OrderStatusPending)
			}
			customer := model.AnonymousCustomer
			if r.Customer != nil && *r.Customer != "" {
				customer = *r.Customer
			}
			views = append(views, OrderView{
				ID:         r.OrderID,
				MerchantID: r.MerchantID,
				Customer:   customer,
				Total:      r.TotalAmount,
				Status:     status,
				CreatedAt:  r.CreatedAt,
				Items:      []OrderItemView{},
			})
			i = len(views) - 1
			index[r.OrderID] = i
		}

		name := ""
		if r.ProductName != nil {
			name = *r.ProductName
		}
		views[i].Items = append(views[i].Items, OrderItemView{
			ProductID: r.ProductID,
			Name:      name,
			Quantity:  r.Quantity,
			Price:     r.UnitPrice,
		})
	}
	return views
}

// 支払済みにする（すでにPAIDでも成功）
func (u *AdminOrderUsecase) MarkPaid(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return invalidInput("invalid id")
	}

	err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatusPaid)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		return storageError(err)
	}
	return nil
}

// 物理削除。明細→ヘッダの順で1つのTxで消す
func (u *AdminOrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return invalidInput("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return storageError(err)
		}

		err := r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			return storageError(err)
		}
		return nil
	})

	if err != nil {
		if _, ok := AsHTTPError(err); !ok {
			return storageError(err)
		}
		return err
	}
	return nil
}
