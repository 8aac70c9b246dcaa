package repository

import (
	"context"
	"errors"

	"qrorder/internal/domain/model"
	repo "qrorder/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 加盟店のACTIVE商品をid昇順で返す
func (r *ProductGormRepository) ListActiveByMerchant(ctx context.Context, merchantID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND status = ?", merchantID, model.ProductStatusActive).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 存在しない・INACTIVE・他の加盟店の商品はすべてErrNotFound
func (r *ProductGormRepository) FindActive(ctx context.Context, productID int64, merchantID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ? AND status = ?", productID, merchantID, model.ProductStatusActive).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
