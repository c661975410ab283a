// Package backend chooses the api.Backend implementation once at startup
// from configuration.
package backend

import (
    "context"
    "errors"
    "fmt"
    "log/slog"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/api/mock"
    "github.com/iliyamo/oneday-class/internal/api/remote"
    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/database"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// ErrRedisUnavailable is returned for STORAGE_DRIVER=redis when Redis does
// not answer.
var ErrRedisUnavailable = errors.New("redis store selected but redis is unreachable")

func nopClose() error { return nil }

// OpenStore opens the key-value store named by cfg.Storage.  The returned
// func releases its connections.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, func() error, error) {
    switch cfg.Storage {
    case "", config.StorageMemory:
        return storage.NewMemoryStore(), nopClose, nil
    case config.StorageRedis:
        rdb := config.NewRedisClient()
        if rdb == nil {
            return nil, nil, ErrRedisUnavailable
        }
        return storage.NewRedisStore(rdb, config.RedisStorePrefix()), rdb.Close, nil
    case config.StorageMySQL:
        db, err := database.Open(ctx, cfg)
        if err != nil {
            return nil, nil, err
        }
        s := storage.NewMySQLStore(db)
        if err := s.Migrate(ctx); err != nil {
            _ = db.Close()
            return nil, nil, fmt.Errorf("migrate kv table: %w", err)
        }
        return s, db.Close, nil
    }
    return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}

// NewMock opens the configured store and builds a mock backend over it.
func NewMock(ctx context.Context, cfg config.Config, opts ...mock.Option) (*mock.Backend, func() error, error) {
    store, closeFn, err := OpenStore(ctx, cfg)
    if err != nil {
        return nil, nil, err
    }
    base := []mock.Option{mock.WithLatency(cfg.MockLatency)}
    if cfg.BcryptCost > 0 {
        base = append(base, mock.WithBcryptCost(cfg.BcryptCost))
    }
    return mock.New(store, append(base, opts...)...), closeFn, nil
}

// Open returns the backend selected by cfg.Backend.  Remote options only
// apply to the remote backend.
func Open(ctx context.Context, cfg config.Config, opts ...remote.Option) (api.Backend, func() error, error) {
    switch cfg.Backend {
    case "", config.BackendMock:
        b, closeFn, err := NewMock(ctx, cfg)
        if err != nil {
            return nil, nil, err
        }
        if err := Seed(ctx, b, cfg); err != nil {
            _ = closeFn()
            return nil, nil, err
        }
        return b, closeFn, nil
    case config.BackendRemote:
        c, err := remote.New(cfg.APIBaseURL, opts...)
        if err != nil {
            return nil, nil, err
        }
        return c, nopClose, nil
    }
    return nil, nil, fmt.Errorf("unknown api backend %q", cfg.Backend)
}

// Seed creates the instructor and admin accounts named in cfg.  Accounts
// that already exist are left alone.
func Seed(ctx context.Context, b *mock.Backend, cfg config.Config) error {
    if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
        in, err := b.SeedInstructor(ctx, cfg.SeedEmail, cfg.SeedName, cfg.SeedPassword, model.RoleInstructor)
        if err != nil {
            return fmt.Errorf("seed instructor: %w", err)
        }
        slog.Info("seeded instructor", "id", in.ID, "email", in.Email)
    }
    if cfg.AdminEmail != "" && cfg.AdminPass != "" {
        in, err := b.SeedInstructor(ctx, cfg.AdminEmail, "Admin", cfg.AdminPass, model.RoleAdmin)
        if err != nil {
            return fmt.Errorf("seed admin: %w", err)
        }
        slog.Info("seeded admin", "id", in.ID, "email", in.Email)
    }
    return nil
}
