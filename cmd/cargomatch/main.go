package main

import (
	"context"
	"log/slog"
	"os"

	"cargomatch/config"
	"cargomatch/internal/delivery"
	"cargomatch/internal/delivery/api"
	"cargomatch/internal/delivery/api/middleware"
	"cargomatch/internal/delivery/api/router/handler"
	"cargomatch/internal/delivery/scheduler"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/infra/auth"
	"cargomatch/internal/infra/export"
	"cargomatch/internal/infra/lock"
	logs "cargomatch/internal/infra/log"
	"cargomatch/internal/infra/metrics"
	"cargomatch/internal/infra/persistence/postgres"
	"cargomatch/internal/infra/pubsub"
	"cargomatch/internal/infra/qrcode"
	"cargomatch/internal/infra/storage"
	"cargomatch/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewLSPProfileRepository,
			postgres.NewContainerTypeRepository,
			postgres.NewContainerRepository,
			postgres.NewBookingRepository,
			postgres.NewShipmentRepository,
			postgres.NewComplaintRepository,
			postgres.NewNotificationRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			export.NewXLSXExporter,
			lock.NewJobLocker,
			pubsub.NewEventPublisher,
			newDocumentStorage,
			newQRCodeService,
			fx.Annotate(
				metrics.NewRecorder,
				fx.As(fx.Self()),
				fx.As(new(service.MetricsRecorder)),
			),
		),
	)
}

// newDocumentStorage opens the document bucket configured under storage.
func newDocumentStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.DocumentStorage, error) {
	return storage.NewBlobStorage(ctx, cfg.Storage, logger)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewLSPService,
			impl.NewContainerService,
			impl.NewContainerTypeService,
			impl.NewBookingService,
			impl.NewClosureService,
			impl.NewShipmentService,
			impl.NewComplaintService,
			impl.NewNotificationService,
			impl.NewDeviceService,
			impl.NewDocumentService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewLSPHandler,
			handler.NewContainerHandler,
			handler.NewBookingHandler,
			handler.NewShipmentHandler,
			handler.NewComplaintHandler,
			handler.NewNotificationHandler,
			handler.NewDeviceHandler,
			handler.NewDocumentHandler,
			handler.NewAdminHandler,
			handler.NewHealthHandler,
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
			fx.Annotate(
				scheduler.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
