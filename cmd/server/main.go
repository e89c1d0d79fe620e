package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/checkout"
	"herbanusa-be/internal/config"
	"herbanusa-be/internal/db"
	"herbanusa-be/internal/httpapi"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/middleware"
	"herbanusa-be/internal/notify"
	"herbanusa-be/internal/order"
	"herbanusa-be/internal/product"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cartTTL       = 24 * time.Hour
	sweepInterval = 5 * time.Minute
	feedSize      = 50
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = listenAndServe
	dialRabbitFunc  = notify.DialRabbit
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.UseDatabase() {
		database = initDBFunc(cfg)
		defer database.Close()
	} else {
		logger.L().Info("DB_HOST not set, using in-memory seed data")
	}

	srv := newServer(cfg, database)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.limiter.Run(ctx)
	go srv.runSweeper(ctx, sweepInterval)

	addr := ":" + cfg.AppPort
	logger.L().Info("server running",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
		zap.Strings("notifiers", srv.notifiers),
	)
	return startServerFunc(addr, srv.handler)
}

type server struct {
	handler   http.Handler
	carts     *cart.Store
	checkouts *checkout.Manager
	limiter   *middleware.RateLimiter
	notifiers []string
	closers   []func() error
}

// newServer wires the stores, services and router. A nil database selects
// the in-memory stores seeded with the demo catalog and orders.
func newServer(cfg *config.Config, database *sql.DB) *server {
	var (
		productRepo product.Repository
		orderRepo   order.Repository
	)
	if database != nil {
		productRepo = product.NewRepository(database)
		orderRepo = order.NewRepository(database)
	} else {
		productRepo = product.NewMemoryRepository(product.SeedProducts())
		orderRepo = order.NewMemoryRepository(order.SeedOrders())
	}

	feed := notify.NewFeed(feedSize)
	notifier, names, closers := buildNotifier(cfg, feed)

	productSvc := product.NewService(productRepo)
	orderSvc := order.NewService(orderRepo, productSvc, notifier)

	cartStore := cart.NewStore(cartTTL)
	cartSvc := cart.NewService(cartStore, productSvc)
	checkouts := checkout.NewManager(orderSvc, notifier, cfg.CheckoutDelay)

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	h := httpapi.NewHandler(productSvc, cartSvc, checkouts, orderSvc, feed)

	return &server{
		handler: httpapi.NewRouter(h, httpapi.RouterConfig{
			JWTSecret:   []byte(cfg.JWTSecret),
			CORSOrigins: cfg.CORSOrigins,
			Limiter:     limiter,
		}),
		carts:     cartStore,
		checkouts: checkouts,
		limiter:   limiter,
		notifiers: names,
		closers:   closers,
	}
}

// buildNotifier fans out to the in-memory feed plus every sink listed in
// NOTIFIER. A broker that cannot be reached is skipped with a warning.
func buildNotifier(cfg *config.Config, feed *notify.Feed) (notify.Notifier, []string, []func() error) {
	sinks := notify.Multi{feed}
	names := []string{"feed"}
	var closers []func() error

	if cfg.NotifierEnabled("log") {
		sinks = append(sinks, notify.LogNotifier{})
		names = append(names, "log")
	}

	if cfg.NotifierEnabled("rabbitmq") {
		n, closeFn, err := dialRabbitFunc(cfg.RabbitMQURL)
		if err != nil {
			logger.L().Warn("rabbitmq notifier disabled", zap.Error(err))
		} else {
			sinks = append(sinks, n)
			names = append(names, "rabbitmq")
			closers = append(closers, closeFn)
		}
	}

	if cfg.NotifierEnabled("redis") {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.L().Warn("redis notifier disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = client.Close()
		} else {
			sinks = append(sinks, notify.NewRedisNotifier(client))
			names = append(names, "redis")
			closers = append(closers, client.Close)
		}
	}

	return sinks, names, closers
}

// sweep drops idle carts together with any checkout left open on them.
func (s *server) sweep() int {
	dropped := s.carts.Sweep()
	for _, sid := range dropped {
		s.checkouts.Discard(sid)
	}
	return len(dropped)
}

func (s *server) runSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				logger.L().Info("idle carts dropped",
					zap.Int("count", n),
					zap.Int("carts", s.carts.Len()),
					zap.Int("checkouts", s.checkouts.Len()),
				)
			}
		}
	}
}

func (s *server) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			logger.L().Warn("close failed", zap.Error(err))
		}
	}
}

// listenAndServe serves until SIGINT/SIGTERM, then drains in-flight
// requests. No write timeout: placing an order holds the request for the
// checkout delay.
func listenAndServe(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
