package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// 加盟店の商品。注文側からは読み取り専用
type Product struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID int64           `gorm:"not null;index" json:"merchant_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Status     ProductStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
