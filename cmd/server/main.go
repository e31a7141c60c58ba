package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/comercio/backoffice/internal/application/catalog"
	inventoryapp "github.com/comercio/backoffice/internal/application/inventory"
	ledgerapp "github.com/comercio/backoffice/internal/application/ledger"
	partnerapp "github.com/comercio/backoffice/internal/application/partner"
	tradeapp "github.com/comercio/backoffice/internal/application/trade"
	"github.com/comercio/backoffice/internal/infrastructure/config"
	"github.com/comercio/backoffice/internal/infrastructure/logger"
	"github.com/comercio/backoffice/internal/infrastructure/persistence"
	"github.com/comercio/backoffice/internal/interfaces/http/handler"
	"github.com/comercio/backoffice/internal/interfaces/http/middleware"
	"github.com/comercio/backoffice/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting backoffice server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel(cfg)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	// Repositories
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	stockRepo := persistence.NewGormWarehouseStockRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	adjustmentRepo := persistence.NewGormStockAdjustmentRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)

	// Transaction scopes, one per bounded context
	inventoryScope := persistence.NewGormInventoryTransactionScope(db)
	ledgerScope := persistence.NewGormLedgerTransactionScope(db)
	tradeScope := persistence.NewGormTradeTransactionScope(db)

	// Application services
	partyService := partnerapp.NewPartyService(partyRepo, log)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo, stockRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	paymentMethodService := catalogapp.NewPaymentMethodService(paymentMethodRepo, log)
	stockService := inventoryapp.NewStockService(inventoryScope, stockRepo, stockMovementRepo, productRepo, log)
	adjustmentService := inventoryapp.NewAdjustmentService(inventoryScope, adjustmentRepo, stockService, log)
	ledgerService := ledgerapp.NewService(ledgerScope, movementRepo, paymentRepo, partyRepo, paymentMethodRepo, log)
	postingProcessor := ledgerapp.NewPostingProcessor(ledgerScope, ledgerService, log)
	purchaseService := tradeapp.NewPurchaseService(tradeScope, purchaseRepo, warehouseRepo, stockService, postingProcessor, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/ready", "/api/v1/health"},
		Required:  true,
		Logger:    log,
	}))

	router.Setup(engine, router.Handlers{
		System:        handler.NewSystemHandler(db),
		Ledger:        handler.NewLedgerHandler(ledgerService),
		Stock:         handler.NewStockHandler(stockService),
		Adjustment:    handler.NewAdjustmentHandler(adjustmentService),
		Purchase:      handler.NewPurchaseHandler(purchaseService),
		Party:         handler.NewPartyHandler(partyService),
		Warehouse:     handler.NewWarehouseHandler(warehouseService),
		Product:       handler.NewProductHandler(productService),
		PaymentMethod: handler.NewPaymentMethodHandler(paymentMethodService),
	})

	// Outbox drain loop. Purchases enqueue their supplier ledger postings and
	// process them inline after commit; the loop retries anything that failed
	// or was left behind by a crash.
	drainCtx, stopDrain := context.WithCancel(context.Background())
	defer stopDrain()
	if cfg.Outbox.ProcessorEnabled {
		go runOutboxProcessor(drainCtx, postingProcessor, cfg.Outbox, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopDrain()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runOutboxProcessor(ctx context.Context, processor *ledgerapp.PostingProcessor, cfg config.OutboxConfig, log *zap.Logger) {
	log.Info("Outbox processor started",
		zap.Int("batch_size", cfg.BatchSize),
		zap.Duration("poll_interval", cfg.PollInterval))

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Outbox processor stopped")
			return
		case <-ticker.C:
			processed, failed, err := processor.ProcessPending(ctx, cfg.BatchSize)
			if err != nil {
				log.Error("Outbox processing round failed", zap.Error(err))
				continue
			}
			if processed > 0 || failed > 0 {
				log.Info("Outbox processing round finished",
					zap.Int("processed", processed),
					zap.Int("failed", failed))
			}
		}
	}
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.App.Env == "production" {
		return gormlogger.Warn
	}
	if cfg.Log.Level == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
