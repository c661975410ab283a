package repository

import (
    "context"
    "encoding/json"
    "errors"
    "strconv"

    "github.com/iliyamo/oneday-class/internal/storage"
)

// collection is a JSON-array table keyed by a uint64 id.  It is not safe
// for concurrent writers; the mock backend serializes access.
type collection[T any] struct {
    store storage.Store
    key   string
    id    func(*T) *uint64
}

func newCollection[T any](store storage.Store, key string, id func(*T) *uint64) collection[T] {
    return collection[T]{store: store, key: key, id: id}
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
    b, err := c.store.Get(ctx, c.key)
    if errors.Is(err, storage.ErrNotFound) {
        return []T{}, nil
    }
    if err != nil {
        return nil, err
    }
    var rows []T
    if err := json.Unmarshal(b, &rows); err != nil {
        return nil, err
    }
    return rows, nil
}

func (c collection[T]) save(ctx context.Context, rows []T) error {
    b, err := json.Marshal(rows)
    if err != nil {
        return err
    }
    return c.store.Put(ctx, c.key, b)
}

// filter returns every row for which keep returns true.
func (c collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
    rows, err := c.all(ctx)
    if err != nil {
        return nil, err
    }
    out := make([]T, 0, len(rows))
    for _, r := range rows {
        if keep(r) {
            out = append(out, r)
        }
    }
    return out, nil
}

// first returns the first row for which match returns true.
func (c collection[T]) first(ctx context.Context, match func(T) bool) (T, error) {
    var zero T
    rows, err := c.all(ctx)
    if err != nil {
        return zero, err
    }
    for _, r := range rows {
        if match(r) {
            return r, nil
        }
    }
    return zero, ErrNotFound
}

func (c collection[T]) get(ctx context.Context, id uint64) (T, error) {
    return c.first(ctx, func(r T) bool { return *c.id(&r) == id })
}

// insert assigns the next id to row and appends it.
func (c collection[T]) insert(ctx context.Context, row *T) error {
    id, err := c.nextID(ctx)
    if err != nil {
        return err
    }
    rows, err := c.all(ctx)
    if err != nil {
        return err
    }
    *c.id(row) = id
    return c.save(ctx, append(rows, *row))
}

// replace overwrites the row with the same id.
func (c collection[T]) replace(ctx context.Context, row T) error {
    rows, err := c.all(ctx)
    if err != nil {
        return err
    }
    id := *c.id(&row)
    for i := range rows {
        if *c.id(&rows[i]) == id {
            rows[i] = row
            return c.save(ctx, rows)
        }
    }
    return ErrNotFound
}

// removeWhere drops every row for which match returns true and reports how
// many were removed.
func (c collection[T]) removeWhere(ctx context.Context, match func(T) bool) (int, error) {
    rows, err := c.all(ctx)
    if err != nil {
        return 0, err
    }
    kept := rows[:0]
    for _, r := range rows {
        if !match(r) {
            kept = append(kept, r)
        }
    }
    removed := len(rows) - len(kept)
    if removed == 0 {
        return 0, nil
    }
    return removed, c.save(ctx, kept)
}

func (c collection[T]) remove(ctx context.Context, id uint64) error {
    n, err := c.removeWhere(ctx, func(r T) bool { return *c.id(&r) == id })
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// nextID increments the sequence stored next to the collection.
func (c collection[T]) nextID(ctx context.Context) (uint64, error) {
    key := "seq:" + c.key
    var cur uint64
    b, err := c.store.Get(ctx, key)
    switch {
    case errors.Is(err, storage.ErrNotFound):
    case err != nil:
        return 0, err
    default:
        if cur, err = strconv.ParseUint(string(b), 10, 64); err != nil {
            return 0, err
        }
    }
    cur++
    if err := c.store.Put(ctx, key, []byte(strconv.FormatUint(cur, 10))); err != nil {
        return 0, err
    }
    return cur, nil
}
