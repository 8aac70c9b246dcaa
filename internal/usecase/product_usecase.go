package usecase

import (
	"context"

	repo "qrorder/internal/repository"

	"github.com/shopspring/decimal"
)

// GET /merchant の商品一覧
type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ProductView struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// 加盟店のACTIVE商品（id昇順）
func (u *ProductUsecase) ListActiveProducts(ctx context.Context, merchantID int64) ([]ProductView, error) {
	if merchantID <= 0 {
		return []ProductView{}, invalidInput("invalid merchantId")
	}

	products, err := u.productRepo.ListActiveByMerchant(ctx, merchantID)
	if err != nil {
		return []ProductView{}, storageError(err)
	}

	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, ProductView{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out, nil
}
