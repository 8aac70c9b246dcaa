package usecase

import (
	"context"
	"errors"
	"strings"

	"qrorder/internal/domain/model"
	repo "qrorder/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock}
}

// カートの1行。価格は受け取らない（DBの価格が正）
type CartLine struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	MerchantID int64
	Customer   *string
	Items      []CartLine
}

type PlaceOrderOutput struct {
	OrderID int64
	Total   decimal.Decimal
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	//Txを開く前に形だけチェック
	if in.MerchantID <= 0 || len(in.Items) == 0 {
		return PlaceOrderOutput{}, invalidInput("merchantId & items are required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return PlaceOrderOutput{}, invalidInput("invalid product id: %d", it.ProductID)
		}
		if it.Quantity <= 0 {
			return PlaceOrderOutput{}, invalidInput("invalid quantity for productId=%d: %d", it.ProductID, it.Quantity)
		}
	}

	var customer *string
	if in.Customer != nil {
		if c := strings.TrimSpace(*in.Customer); c != "" {
			customer = &c
		}
	}

	var out PlaceOrderOutput

	//注文ヘッダ＋明細は1つのTxで（途中で失敗したら全部rollback）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()

		//合計は0で先に作る
		orderID, err := r.Orders().Create(ctx, model.Order{
			MerchantID:  in.MerchantID,
			Customer:    customer,
			TotalAmount: decimal.Zero,
			Status:      model.OrderStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return storageError(err)
		}

		//明細はDBの単価で作り、合計を積み上げる
		total := decimal.Zero
		for _, it := range in.Items {
			p, err := r.Products().FindActive(ctx, it.ProductID, in.MerchantID)
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFound(it.ProductID, in.MerchantID)
			}
			if err != nil {
				return storageError(err)
			}

			item := model.OrderItem{
				OrderID:   orderID,
				ProductID: p.ID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				CreatedAt: now,
			}
			if _, err := r.OrderItems().Create(ctx, item); err != nil {
				return storageError(err)
			}
			total = total.Add(item.Subtotal())
		}

		//合計を書き戻す
		if err := r.Orders().UpdateTotal(ctx, orderID, total); err != nil {
			return storageError(err)
		}

		out = PlaceOrderOutput{OrderID: orderID, Total: total}
		return nil
	})

	if err != nil {
		//Tx開始・commit自体の失敗
		if _, ok := AsHTTPError(err); !ok {
			return PlaceOrderOutput{}, storageError(err)
		}
		return PlaceOrderOutput{}, err
	}
	return out, nil
}
