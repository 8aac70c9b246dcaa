package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qrorder/internal/domain/model"
	"qrorder/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type testApp struct {
	e     *echo.Echo
	db    *gorm.DB
	clock *fixedClock
}

// 本番と同じ組み立て（server.Build）をインメモリDBで動かす
func newTestApp(t *testing.T, jwtSecret string) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Order{}, &model.OrderItem{}))

	clock := &fixedClock{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
	e := server.Build(db, server.Options{Clock: clock, JWTSecret: jwtSecret})
	return &testApp{e: e, db: db, clock: clock}
}

func (a *testApp) seedProduct(t *testing.T, id, merchantID int64, name, price string, status model.ProductStatus) {
	t.Helper()
	p := model.Product{ID: id, MerchantID: merchantID, Name: name, Price: decimal.RequireFromString(price), Status: status}
	require.NoError(t, a.db.Create(&p).Error)
}

func (a *testApp) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(m).Count(&n).Error)
	return n
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v), rec.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

type placeOrderBody struct {
	OrderID int64       `json:"orderId"`
	Success bool        `json:"success"`
	Total   json.Number `json:"total"`
}

type orderItemBody struct {
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int64       `json:"quantity"`
	Price     json.Number `json:"price"`
}

type orderBody struct {
	ID         int64           `json:"id"`
	MerchantID int64           `json:"merchant_id"`
	Customer   string          `json:"customer"`
	Total      json.Number     `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []orderItemBody `json:"items"`
}
