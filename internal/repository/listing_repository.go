package repository

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// ListingRepo manages persistence for listings.
type ListingRepo struct {
    rows collection[model.Listing]
}

// NewListingRepo constructs a ListingRepo on store.
func NewListingRepo(store storage.Store) *ListingRepo {
    return &ListingRepo{rows: newCollection(store, "listings", func(l *model.Listing) *uint64 { return &l.ID })}
}

// Create inserts l and assigns its ID.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
    return r.rows.insert(ctx, l)
}

// GetByID returns ErrNotFound when no listing has the id.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
    return r.rows.get(ctx, id)
}

// GetByShareCode looks a listing up by its public link code.
func (r *ListingRepo) GetByShareCode(ctx context.Context, code string) (model.Listing, error) {
    return r.rows.first(ctx, func(l model.Listing) bool { return l.ShareCode == code })
}

// ListByInstructor returns the instructor's listings.  An instructorID of
// zero returns every listing.
func (r *ListingRepo) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Listing, error) {
    return r.rows.filter(ctx, func(l model.Listing) bool {
        return instructorID == 0 || l.InstructorID == instructorID
    })
}

// Update overwrites the stored listing with the same ID.
func (r *ListingRepo) Update(ctx context.Context, l model.Listing) error {
    return r.rows.replace(ctx, l)
}

// Delete removes the listing.  Sessions are removed by the caller.
func (r *ListingRepo) Delete(ctx context.Context, id uint64) error {
    return r.rows.remove(ctx, id)
}
