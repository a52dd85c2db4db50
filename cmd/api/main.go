package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"greenleaf-commerce/internal/config"
	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/httpserver"
	"greenleaf-commerce/internal/logging"
	"greenleaf-commerce/internal/notify"
	cartrepo "greenleaf-commerce/internal/repository/cart"
	catalogrepo "greenleaf-commerce/internal/repository/catalog"
	compliancerepo "greenleaf-commerce/internal/repository/compliance"
	customerrepo "greenleaf-commerce/internal/repository/customer"
	deliveryrepo "greenleaf-commerce/internal/repository/delivery"
	inventoryrepo "greenleaf-commerce/internal/repository/inventory"
	locationrepo "greenleaf-commerce/internal/repository/location"
	orderrepo "greenleaf-commerce/internal/repository/order"
	cartsvc "greenleaf-commerce/internal/service/cart"
	checkoutsvc "greenleaf-commerce/internal/service/checkout"
	compliancesvc "greenleaf-commerce/internal/service/compliance"
	deliverysvc "greenleaf-commerce/internal/service/delivery"
	inventorysvc "greenleaf-commerce/internal/service/inventory"
	ordersvc "greenleaf-commerce/internal/service/order"
	"greenleaf-commerce/internal/service/ordernumber"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.RedisAddr != "" {
		redisNotifier := notify.NewRedis(cfg.RedisAddr)
		defer redisNotifier.Close()
		notifier = redisNotifier
	}

	txRunner := db.NewTxRunner(pool)

	cartRepo := cartrepo.NewPostgres(pool)
	catalogRepo := catalogrepo.NewPostgres(pool)
	orderRepo := orderrepo.NewPostgres(pool, logger)
	inventoryRepo := inventoryrepo.NewPostgres(pool)
	locationRepo := locationrepo.NewPostgres(pool)
	customerRepo := customerrepo.NewPostgres(pool)
	complianceRepo := compliancerepo.NewPostgres(pool)
	deliveryRepo := deliveryrepo.NewPostgres(pool)

	numbers := ordernumber.New(orderRepo)
	complianceService := compliancesvc.New(complianceRepo, customerRepo, locationRepo, pool, logger)
	cartService := cartsvc.New(cartRepo, catalogRepo)
	checkoutService := checkoutsvc.New(txRunner, cartRepo, catalogRepo, orderRepo, inventoryRepo,
		locationRepo, deliveryRepo, complianceService, numbers, logger)
	orderService := ordersvc.New(txRunner, orderRepo, inventoryRepo, notifier, logger)
	deliveryService := deliverysvc.New(txRunner, deliveryRepo, notifier, logger)
	inventoryService := inventorysvc.New(pool, inventoryRepo, complianceService)

	srv := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		CartSvc:       cartService,
		CheckoutSvc:   checkoutService,
		OrderSvc:      orderService,
		DeliverySvc:   deliveryService,
		InventorySvc:  inventoryService,
		ComplianceSvc: complianceService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
