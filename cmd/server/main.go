package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/ayush-nalawade/CRM-backend/internal/application/catalog"
	partnerapp "github.com/ayush-nalawade/CRM-backend/internal/application/partner"
	tradeapp "github.com/ayush-nalawade/CRM-backend/internal/application/trade"
	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/auth"
	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/config"
	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/logger"
	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/persistence"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/handler"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	ledgerScope := persistence.NewLedgerTransactionScope(db.DB)

	customerService := partnerapp.NewCustomerService(customerRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	purchaseService := tradeapp.NewPurchaseService(ledgerScope, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(router.Dependencies{
		Logger:          log,
		JWTService:      jwtService,
		SystemHandler:   handler.NewSystemHandler(db, version),
		CustomerHandler: handler.NewCustomerHandler(customerService),
		ProductHandler:  handler.NewProductHandler(productService),
		PurchaseHandler: handler.NewPurchaseHandler(purchaseService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
		return
	}

	log.Info("Server stopped")
}
