package main

import (
	"context"
	"log/slog"
	"os"

	"backoffice/config"
	"backoffice/internal/delivery"
	"backoffice/internal/delivery/api"
	"backoffice/internal/delivery/api/router/handler"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/archive"
	"backoffice/internal/infra/clock"
	logs "backoffice/internal/infra/log"
	"backoffice/internal/infra/persistence/database"
	"backoffice/internal/infra/pubsub"
	"backoffice/internal/infra/qrcode"
	"backoffice/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		database.New,
		clock.New,
		newSchemes,
	)
}

// newSchemes binds identifier allocation to the business timezone
func newSchemes(cfg *config.Config) *sequence.Schemes {
	return sequence.NewSchemes(cfg.Location())
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			database.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			pubsub.NewEventPublisher,
			archive.New,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCustomerService,
			impl.NewBillerService,
			impl.NewInventoryService,
			impl.NewSupplierService,
			impl.NewPromoService,
			impl.NewVoucherService,
			impl.NewRewardService,
			impl.NewLedgerService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSystemHandler,
			handler.NewCustomerHandler,
			handler.NewBillerHandler,
			handler.NewInventoryHandler,
			handler.NewSupplierHandler,
			handler.NewPromoHandler,
			handler.NewVoucherHandler,
			handler.NewRewardHandler,
			handler.NewLedgerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
