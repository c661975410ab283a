package storage_test

import (
    "context"
    "regexp"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/oneday-class/internal/storage"
)

func exerciseStore(t *testing.T, s storage.Store) {
    t.Helper()
    ctx := context.Background()

    _, err := s.Get(ctx, "missing")
    require.ErrorIs(t, err, storage.ErrNotFound)

    require.NoError(t, s.Put(ctx, "k", []byte("v1")))
    require.NoError(t, s.Put(ctx, "k", []byte("v2")))
    got, err := s.Get(ctx, "k")
    require.NoError(t, err)
    require.Equal(t, []byte("v2"), got)

    require.NoError(t, s.Delete(ctx, "k"))
    _, err = s.Get(ctx, "k")
    require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
    exerciseStore(t, storage.NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
    s := storage.NewMemoryStore()
    buf := []byte("abc")
    require.NoError(t, s.Put(context.Background(), "k", buf))
    buf[0] = 'x'
    got, err := s.Get(context.Background(), "k")
    require.NoError(t, err)
    require.Equal(t, []byte("abc"), got)
}

func TestRedisStore(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    defer rdb.Close()

    exerciseStore(t, storage.NewRedisStore(rdb, "oneday:"))

    require.NoError(t, storage.NewRedisStore(rdb, "oneday:").Put(context.Background(), "x", []byte("1")))
    require.True(t, mr.Exists("oneday:x"))
}

func TestMySQLStore(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    s := storage.NewMySQLStore(db)
    ctx := context.Background()

    mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS kv_entries`)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    require.NoError(t, s.Migrate(ctx))

    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`)).
        WithArgs("k", []byte("v")).
        WillReturnResult(sqlmock.NewResult(1, 1))
    require.NoError(t, s.Put(ctx, "k", []byte("v")))

    mock.ExpectQuery(regexp.QuoteMeta(`SELECT v FROM kv_entries WHERE k = ?`)).
        WithArgs("k").
        WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte("v")))
    got, err := s.Get(ctx, "k")
    require.NoError(t, err)
    require.Equal(t, []byte("v"), got)

    mock.ExpectQuery(regexp.QuoteMeta(`SELECT v FROM kv_entries WHERE k = ?`)).
        WithArgs("nope").
        WillReturnRows(sqlmock.NewRows([]string{"v"}))
    _, err = s.Get(ctx, "nope")
    require.ErrorIs(t, err, storage.ErrNotFound)

    mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE k = ?`)).
        WithArgs("k").
        WillReturnResult(sqlmock.NewResult(0, 1))
    require.NoError(t, s.Delete(ctx, "k"))

    require.NoError(t, mock.ExpectationsWereMet())
}
