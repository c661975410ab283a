package repository

import (
    "context"
    "time"

    "github.com/iliyamo/oneday-class/internal/storage"
)

// refreshRow is one stored refresh token.  Only the SHA-256 hash of the
// raw token is kept.
type refreshRow struct {
    ID           uint64     `json:"id"`
    InstructorID uint64     `json:"instructorId"`
    TokenHash    string     `json:"tokenHash"`
    ExpiresAt    time.Time  `json:"expiresAt"`
    RevokedAt    *time.Time `json:"revokedAt,omitempty"`
}

// TokenRepo persists and validates refresh tokens.
type TokenRepo struct {
    rows collection[refreshRow]
}

func NewTokenRepo(store storage.Store) *TokenRepo {
    return &TokenRepo{rows: newCollection(store, "refresh_tokens", func(r *refreshRow) *uint64 { return &r.ID })}
}

// StoreRefresh inserts a refresh token hash and drops rows that expired.
func (r *TokenRepo) StoreRefresh(ctx context.Context, instructorID uint64, tokenHash string, exp time.Time) error {
    now := time.Now().UTC()
    if _, err := r.rows.removeWhere(ctx, func(row refreshRow) bool { return now.After(row.ExpiresAt) }); err != nil {
        return err
    }
    row := refreshRow{InstructorID: instructorID, TokenHash: tokenHash, ExpiresAt: exp}
    return r.rows.insert(ctx, &row)
}

// ValidateRefresh returns the instructor id if a non-revoked, non-expired
// token with the hash exists.  A revoked token yields ErrTokenReused
// together with its owner so the caller can end every session.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
    row, err := r.rows.first(ctx, func(row refreshRow) bool { return row.TokenHash == tokenHash })
    if err != nil {
        return 0, err
    }
    if time.Now().UTC().After(row.ExpiresAt) {
        return 0, ErrNotFound
    }
    if row.RevokedAt != nil {
        return row.InstructorID, ErrTokenReused
    }
    return row.InstructorID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
    return r.revokeWhere(ctx, func(row refreshRow) bool { return row.TokenHash == tokenHash })
}

// RevokeAllForInstructor revokes every active token of an instructor.
func (r *TokenRepo) RevokeAllForInstructor(ctx context.Context, instructorID uint64) error {
    return r.revokeWhere(ctx, func(row refreshRow) bool { return row.InstructorID == instructorID })
}

func (r *TokenRepo) revokeWhere(ctx context.Context, match func(refreshRow) bool) error {
    rows, err := r.rows.all(ctx)
    if err != nil {
        return err
    }
    now := time.Now().UTC()
    changed := false
    for i := range rows {
        if rows[i].RevokedAt == nil && match(rows[i]) {
            rows[i].RevokedAt = &now
            changed = true
        }
    }
    if !changed {
        return nil
    }
    return r.rows.save(ctx, rows)
}
