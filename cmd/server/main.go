package main // Entry point of the dev server

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/iliyamo/oneday-class/internal/backend"
    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/queue"
    "github.com/iliyamo/oneday-class/internal/router"
)

func main() {
    slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

    cfg := config.LoadServer() // fatal on missing secrets
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    // The server always serves the local mock backend; its latency would
    // only slow down the remote clients talking to it.
    cfg.MockLatency = 0
    b, closeStore, err := backend.NewMock(ctx, cfg)
    if err != nil {
        slog.Error("open store", "driver", cfg.Storage, "err", err)
        os.Exit(1)
    }
    defer closeStore()
    if err := backend.Seed(ctx, b, cfg); err != nil {
        slog.Error("seed accounts", "err", err)
        os.Exit(1)
    }

    rdb := config.NewRedisClient()
    if rdb == nil {
        slog.Warn("redis unreachable; rate limiting and page cache disabled")
    } else {
        defer rdb.Close()
    }

    events := queue.NewPublisher(cfg.AMQPURL)
    if cfg.AMQPURL != "" {
        go func() {
            c := queue.Consumer{URL: cfg.AMQPURL, Dir: "logs"}
            if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                slog.Error("event consumer stopped", "err", err)
            }
        }()
    }

    e := router.New(router.Options{
        Config:    cfg,
        Backend:   b,
        Accounts:  b,
        Tokens:    b.Store(),
        Events:    events,
        Redis:     rdb,
        RateLimit: config.LoadRateLimitConfig(),
        Cache:     config.LoadCacheConfig(),
        Logger:    slog.Default(),
    })

    addr := ":" + cfg.Port
    slog.Info("listening", "addr", addr, "env", cfg.Env, "storage", cfg.Storage)
    go func() {
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            slog.Error("server failed", "err", err)
            stop()
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        slog.Error("shutdown", "err", err)
    }
}
