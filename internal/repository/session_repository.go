package repository

import (
    "context"
    "sort"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// SessionRepo manages persistence for sessions.
type SessionRepo struct {
    rows collection[model.Session]
}

// NewSessionRepo constructs a SessionRepo on store.
func NewSessionRepo(store storage.Store) *SessionRepo {
    return &SessionRepo{rows: newCollection(store, "sessions", func(s *model.Session) *uint64 { return &s.ID })}
}

// Create inserts s and assigns its ID.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
    return r.rows.insert(ctx, s)
}

// GetByID returns ErrNotFound when no session has the id.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (model.Session, error) {
    return r.rows.get(ctx, id)
}

// ListByListing returns the sessions of a listing ordered by date and
// start time.
func (r *SessionRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Session, error) {
    out, err := r.rows.filter(ctx, func(s model.Session) bool { return s.ListingID == listingID })
    if err != nil {
        return nil, err
    }
    sortSessions(out)
    return out, nil
}

// ListByListings returns the sessions of any of the given listings.
func (r *SessionRepo) ListByListings(ctx context.Context, listingIDs []uint64) ([]model.Session, error) {
    set := make(map[uint64]struct{}, len(listingIDs))
    for _, id := range listingIDs {
        set[id] = struct{}{}
    }
    out, err := r.rows.filter(ctx, func(s model.Session) bool {
        _, ok := set[s.ListingID]
        return ok
    })
    if err != nil {
        return nil, err
    }
    sortSessions(out)
    return out, nil
}

// Update overwrites the stored session with the same ID.
func (r *SessionRepo) Update(ctx context.Context, s model.Session) error {
    return r.rows.replace(ctx, s)
}

// Delete removes one session.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
    return r.rows.remove(ctx, id)
}

// DeleteByListing removes every session of a listing.
func (r *SessionRepo) DeleteByListing(ctx context.Context, listingID uint64) error {
    _, err := r.rows.removeWhere(ctx, func(s model.Session) bool { return s.ListingID == listingID })
    return err
}

func sortSessions(ss []model.Session) {
    sort.SliceStable(ss, func(i, j int) bool {
        if ss[i].Date != ss[j].Date {
            return ss[i].Date < ss[j].Date
        }
        return ss[i].StartTime < ss[j].StartTime
    })
}
