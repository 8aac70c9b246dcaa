package repository_test

import (
	"testing"
	"time"

	"qrorder/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// テストごとに空のインメモリDBを作る
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	//:memory: は接続ごとに別DBになるので1本に固定
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Order{}, &model.OrderItem{}))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, db *gorm.DB, merchantID int64, name, price string, status model.ProductStatus) model.Product {
	t.Helper()
	p := model.Product{MerchantID: merchantID, Name: name, Price: dec(price), Status: status}
	require.NoError(t, db.Create(&p).Error)
	return p
}

type seedLine struct {
	product model.Product
	qty     int64
}

// 明細つきの注文を直接作る（created_atを指定したいとき用）
func seedOrder(t *testing.T, db *gorm.DB, merchantID int64, customer *string, status model.OrderStatus, createdAt time.Time, lines ...seedLine) model.Order {
	t.Helper()

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.product.Price.Mul(decimal.NewFromInt(l.qty)))
	}
	o := model.Order{
		MerchantID:  merchantID,
		Customer:    customer,
		TotalAmount: total,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&o).Error)

	for _, l := range lines {
		it := model.OrderItem{OrderID: o.ID, ProductID: l.product.ID, Quantity: l.qty, UnitPrice: l.product.Price, CreatedAt: createdAt}
		require.NoError(t, db.Create(&it).Error)
	}
	return o
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }
