package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"ordersvc/internal/config"
	"ordersvc/internal/handler"
	"ordersvc/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// brokerなど Start/Stop を持つ部品
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type Deps struct {
	Schema    SchemaEnsurer
	Publisher Lifecycle
	Orders    handler.OrderService
	Health    handler.HealthChecker
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Log       *slog.Logger

	// Publisher停止の後に、この順で閉じる（cache → DB など）
	Closers []func() error
}

// Server はHTTPの受付と、DB・brokerの起動/停止の順番を持つ。
// リクエストは Start 成功後から Stop 開始までだけ受け付ける。
type Server struct {
	e    *echo.Echo
	addr string
	deps Deps
	log  *slog.Logger

	ready atomic.Bool

	mu      sync.Mutex
	started bool
	stopped bool
}

func New(cfg config.Config, d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, addr: cfg.Addr(), deps: d, log: d.Log}
	s.registerRoutes(e)
	return s
}

// Handler はテスト用
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start は スキーマ作成 → publisher起動 の順に行う。
// どちらかが失敗したらエラーを返す（途中からの復旧はしない）
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.New("server: already stopped")
	}
	if s.started {
		return nil
	}

	if err := s.deps.Schema.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.deps.Publisher.Start(ctx); err != nil {
		return fmt.Errorf("start publisher: %w", err)
	}

	s.started = true
	s.ready.Store(true)
	s.log.Info("server started")
	return nil
}

// Serve はStopされるまでブロックする
func (s *Server) Serve() error {
	if !s.ready.Load() {
		return errors.New("server: Serve called before Start")
	}
	s.log.Info("listening", slog.String("addr", s.addr))
	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop は 受付停止 → publisher停止 → DBなどを閉じる の順に行う。2回目以降は何もしない
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	s.ready.Store(false)

	var errs []error
	if err := s.e.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.deps.Publisher.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop publisher: %w", err))
	}
	for _, closeFn := range s.deps.Closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}

	s.log.Info("server stopped")
	return errors.Join(errs...)
}
