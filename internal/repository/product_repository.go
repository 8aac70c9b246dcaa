package repository

import (
	"context"
	"errors"

	"qrorder/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の読み取りだけを約束。商品の登録・更新は加盟店管理側の責務。
type ProductRepository interface {
	//ACTIVEの商品をid昇順で返す
	ListActiveByMerchant(ctx context.Context, merchantID int64) ([]model.Product, error)
	//購入可能な商品（ACTIVE・同じ加盟店）だけを返す。それ以外はErrNotFound
	FindActive(ctx context.Context, productID int64, merchantID int64) (model.Product, error)
}
