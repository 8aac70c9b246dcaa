package db

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"qrorder/internal/config"
	"qrorder/internal/domain/model"
	infrarepo "qrorder/internal/infra/repository"
	"qrorder/internal/usecase"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 実DBを使うテスト。TEST_DATABASE_DSN が無ければスキップ
func integrationDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}
	return dsn
}

func TestPostgres_MigrateAndPlaceOrder(t *testing.T) {
	dsn := integrationDSN(t)
	ctx := context.Background()
	log := zap.NewNop()

	//1) スキーマ作成
	m, err := NewMigrator(dsn, log)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	t.Cleanup(func() {
		_ = m.Down()
		_ = m.Close()
	})

	//2) テーブルができたかをpgxで直接確認
	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = raw.Close() }()

	for _, table := range []string{"products", "orders", "order_items"} {
		var name sql.NullString
		require.NoError(t, raw.QueryRowContext(ctx, "SELECT to_regclass($1)::text", table).Scan(&name))
		assert.True(t, name.Valid, table)
	}

	//3) 本番と同じ接続でTxを通す
	gormDB, err := Connect(config.Config{DatabaseURL: dsn, LogLevel: "info"}, log)
	require.NoError(t, err)

	p := model.Product{MerchantID: 1, Name: "Coffee", Price: decimal.RequireFromString("5.00"), Status: model.ProductStatusActive}
	require.NoError(t, gormDB.Create(&p).Error)

	uc := usecase.NewOrderUsecase(infrarepo.NewTxManagerGorm(gormDB), usecase.SystemClock{})

	out, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		MerchantID: 1,
		Items:      []usecase.CartLine{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "15.00", out.Total.StringFixed(2))

	_, err = uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		MerchantID: 1,
		Items:      []usecase.CartLine{{ProductID: p.ID, Quantity: 1}, {ProductID: p.ID + 1000, Quantity: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)

	//失敗した注文は残らない
	var orders int
	require.NoError(t, raw.QueryRowContext(ctx, "SELECT count(*) FROM orders").Scan(&orders))
	assert.Equal(t, 1, orders)

	var unitPrice string
	require.NoError(t, raw.QueryRowContext(ctx,
		"SELECT unit_price::text FROM order_items WHERE order_id = $1", out.OrderID).Scan(&unitPrice))
	assert.Equal(t, "5.00", unitPrice)
}
