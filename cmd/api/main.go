package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/config"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/infrastructure/database"
	"github.com/sangkips/trademarket-api/internal/infrastructure/memory"
	"github.com/sangkips/trademarket-api/internal/infrastructure/repository"
	"github.com/sangkips/trademarket-api/internal/presentation/http/handler"
	"github.com/sangkips/trademarket-api/internal/presentation/http/routes"
	"github.com/sangkips/trademarket-api/pkg/printer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	logger, err := newLogger(&cfg.App)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tm, idempotencyRepo, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}

	// Initialize thermal printer
	device, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		logger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		device = printer.Discard{}
	}

	// Initialize services
	printerService := service.NewPrinterService(tm, device, service.PrinterSettings{
		Type:      cfg.Printer.Type,
		Width:     cfg.Printer.Width,
		StoreName: cfg.Printer.StoreName,
	}, logger)
	receiptOpts := service.ReceiptOptions{StrictCheckout: cfg.Receipt.StrictCheckout}
	if cfg.Receipt.PrintOnCheckout {
		receiptOpts.Printer = printerService
	}
	receiptService := service.NewReceiptService(tm, receiptOpts, logger)
	productService := service.NewProductService(tm, logger)
	customerService := service.NewCustomerService(tm, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
		Ctx:             ctx,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("storage", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		sweepIdempotencyKeys(gctx, idempotencyRepo, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "graceful shutdown")
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domainRepo.TransactionManager, domainRepo.IdempotencyRepository, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		tm := memory.NewStore().NewTransactionManager()
		if cfg.Database.Seed {
			if err := database.SeedDemoData(ctx, tm, logger); err != nil {
				return nil, nil, err
			}
		}
		return tm, memory.NewIdempotencyRepository(), nil
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, logger); err != nil {
		return nil, nil, err
	}

	tm := repository.NewTransactionManager(db)
	if cfg.Database.Seed {
		if err := database.SeedDemoData(ctx, tm, logger); err != nil {
			logger.Warn("failed to seed demo data", zap.Error(err))
		}
	}
	return tm, repository.NewIdempotencyRepository(db), nil
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx, time.Now()); err != nil {
				logger.Warn("failed to delete expired idempotency keys", zap.Error(err))
			}
		}
	}
}
