// Command classctl is the instructor console.  It drives the session,
// reservation and settlement services against the backend selected by
// API_BACKEND (mock or remote).
package main

import (
    "context"
    "errors"
    "log/slog"
    "os"

    "github.com/iliyamo/oneday-class/internal/api/remote"
    "github.com/iliyamo/oneday-class/internal/backend"
    "github.com/iliyamo/oneday-class/internal/config"
)

func main() {
    slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
    cfg := config.Load()

    ctx := context.Background()
    b, closeFn, err := backend.Open(ctx, cfg, remote.OnUnauthenticated(func() {
        slog.Warn("session expired; run again with -email and -password")
    }))
    if err != nil {
        slog.Error("open backend", "backend", cfg.Backend, "err", err)
        os.Exit(1)
    }
    defer closeFn()

    cli := newCommandLine(b, os.Stdin, os.Stdout)
    if err := cli.run(ctx, os.Args); err != nil {
        if !errors.Is(err, errHelp) {
            slog.Error("command failed", "err", err)
        }
        closeFn()
        os.Exit(1)
    }
}
