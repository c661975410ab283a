package storage

import (
    "context"
    "database/sql"
    "errors"
)

// MySQLStore keeps values in a single kv_entries table.
type MySQLStore struct {
    db *sql.DB
}

// kvSchema creates the backing table when it is missing.
const kvSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
    k VARCHAR(191) NOT NULL PRIMARY KEY,
    v LONGBLOB NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// NewMySQLStore wraps db.  Call Migrate once before use.
func NewMySQLStore(db *sql.DB) *MySQLStore {
    return &MySQLStore{db: db}
}

// Migrate creates the kv_entries table if needed.
func (s *MySQLStore) Migrate(ctx context.Context) error {
    _, err := s.db.ExecContext(ctx, kvSchema)
    return err
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
    var v []byte
    err := s.db.QueryRowContext(ctx, `SELECT v FROM kv_entries WHERE k = ?`, key).Scan(&v)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    return v, err
}

func (s *MySQLStore) Put(ctx context.Context, key string, value []byte) error {
    _, err := s.db.ExecContext(ctx,
        `INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
        key, value)
    return err
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
    _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE k = ?`, key)
    return err
}
