package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ordersvc/internal/clock"
	"ordersvc/internal/config"
	"ordersvc/internal/infra/cache"
	"ordersvc/internal/infra/db"
	"ordersvc/internal/infra/kafka"
	infraRepo "ordersvc/internal/infra/repository"
	"ordersvc/internal/logger"
	"ordersvc/internal/metrics"
	"ordersvc/internal/server"
	"ordersvc/internal/usecase"
	"ordersvc/internal/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	//設定（.env → 環境変数）
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.AppName, cfg.LogLevel)
	slog.SetDefault(log)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	closers := []func() error{}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)

	//broker
	publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaLinger, log)

	//metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, cfg.AppName)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(orderRepo, publisher, validator.NewOrderValidator(), cfg.KafkaTopicOrders, log, m)
	if cfg.CacheEnabled() {
		orderCache := cache.NewOrderCache(cfg.RedisAddr, cfg.AppName, cfg.OrderCacheTTL)
		orderUC.WithCache(orderCache)
		closers = append(closers, orderCache.Close)
		log.Info("order cache enabled", slog.String("redis_addr", cfg.RedisAddr))
	}
	healthUC := usecase.NewHealthUsecase(orderRepo, clock.NewSystem())

	//DBは最後に閉じる
	closers = append(closers, func() error { return db.Close(gormDB) })

	srv := server.New(cfg, server.Deps{
		Schema:    orderRepo,
		Publisher: publisher,
		Orders:    orderUC,
		Health:    healthUC,
		Metrics:   m,
		Gatherer:  reg,
		Closers:   closers,
		Log:       log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//スキーマ作成 → publisher起動。失敗したら後始末して終了
	if err := srv.Start(ctx); err != nil {
		_ = srv.Stop(context.Background())
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-serveErr:
	}

	//受付停止 → publisher停止 → cache/DBを閉じる
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return errors.Join(runErr, srv.Stop(shutdownCtx))
}
