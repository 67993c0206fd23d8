package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FoodOrder/audit"
	"FoodOrder/cache"
	"FoodOrder/config"
	"FoodOrder/jwt"
	"FoodOrder/logging"
	"FoodOrder/routers"
	"FoodOrder/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic("cannot build logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := config.SetupDatabaseConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("cannot connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	var catalogCache cache.Catalog = cache.Nop{}
	rdb, err := config.SetupRedisConnection(cfg.Redis)
	if err != nil {
		logger.Fatal("cannot connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		catalogCache = cache.NewRedisCatalog(rdb, cfg.Redis.TTL)
	} else {
		logger.Info("redis not configured, restaurant cache disabled")
	}

	var recorder audit.Recorder = audit.Nop{}
	mongoClient, err := config.SetupMongoConnection(cfg.MongoDB)
	if err != nil {
		logger.Fatal("cannot connect to mongodb", zap.Error(err))
	}
	if mongoClient != nil {
		defer mongoClient.Disconnect(context.Background())
		recorder = audit.NewMongoRecorder(mongoClient, cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		logger.Info("mongodb not configured, audit trail disabled")
	}

	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	carts := services.NewCartService(db, logger)
	svc := routers.Services{
		Accounts: services.NewAccountService(db, issuer, recorder, logger),
		Catalog:  services.NewCatalogService(db, catalogCache, recorder, logger),
		Reviews:  services.NewReviewService(db, logger),
		Carts:    carts,
		Orders:   services.NewOrderService(db, carts, recorder, logger),
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Accounts.SeedAdmin(startupCtx, cfg.Admin); err != nil {
		logger.Fatal("cannot seed admin", zap.Error(err))
	}
	if purged, err := svc.Accounts.PurgeExpiredTokens(startupCtx, time.Now()); err != nil {
		logger.Warn("purge expired login tokens", zap.Error(err))
	} else if purged > 0 {
		logger.Info("purged expired login tokens", zap.Int64("count", purged))
	}
	cancel()

	router := routers.SetupRouters(cfg.Server, svc, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
