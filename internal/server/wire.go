package server

import (
	"context"

	"qrorder/internal/handler"
	infraRepo "qrorder/internal/infra/repository"
	"qrorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Logger           *zap.Logger
	Clock            usecase.Clock
	CORSAllowOrigins []string
	JWTSecret        string
}

// Buildはrepository→usecase→handlerを組み立ててechoを返す
func Build(db *gorm.DB, opts Options) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = usecase.SystemClock{}
	}

	//Repository（GORM実装）
	productRepo := infraRepo.NewProductGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	txm := infraRepo.NewTxManagerGorm(db)

	//Usecase
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txm, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, clock)

	//Handler
	hlog := log.Named("http")
	h := Handlers{
		Products:    handler.NewProductHandler(productUC, hlog),
		Orders:      handler.NewOrderHandler(orderUC, hlog),
		AdminOrders: handler.NewAdminOrderHandler(adminOrderUC, hlog),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	e := newEcho(log, opts.CORSAllowOrigins)
	RegisterRoutes(e, h, opts.JWTSecret)
	return e
}
