package repository

import (
	"context"

	"qrorder/internal/domain/model"
	repo "qrorder/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 同じステータスへの更新でも一致した行があれば成功
func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除（明細の削除は呼び出し側のTxで先に行う）
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&model.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListWithItems(ctx context.Context, f repo.OrderListFilter) ([]repo.OrderLineRow, error) {
	q := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id AS order_id, o.merchant_id, o.customer, o.total_amount, o.status, o.created_at,
			oi.id AS item_id, oi.product_id, p.name AS product_name, oi.quantity, oi.unit_price`).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id")

	//merchant 絞り込み
	if f.MerchantID != nil {
		q = q.Where("o.merchant_id = ?", *f.MerchantID)
	}

	//期間絞り込み
	if f.CreatedFrom != nil {
		q = q.Where("o.created_at >= ?", *f.CreatedFrom)
	}

	//結合順に頼らず明示的に並べる
	var rows []repo.OrderLineRow
	err := q.Order("o.created_at desc").
		Order("o.id desc").
		Order("oi.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderLineRow{}, err
	}
	return rows, nil
}
