package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

// 顧客名が無い注文の表示名
const AnonymousCustomer = "Guest"

// TotalAmountは明細から再計算した値だけを入れる（クライアントの値は使わない）
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID  int64           `gorm:"not null;index" json:"merchant_id"`
	Customer    *string         `gorm:"type:varchar(255)" json:"customer"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (o Order) CustomerLabel() string {
	if o.Customer == nil || *o.Customer == "" {
		return AnonymousCustomer
	}
	return *o.Customer
}
