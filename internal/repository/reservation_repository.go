package repository

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// ReservationRepo manages persistence for reservations.  Reservations are
// never removed, only updated to CANCELLED.
type ReservationRepo struct {
    rows collection[model.Reservation]
}

// NewReservationRepo constructs a ReservationRepo on store.
func NewReservationRepo(store storage.Store) *ReservationRepo {
    return &ReservationRepo{rows: newCollection(store, "reservations", func(r *model.Reservation) *uint64 { return &r.ID })}
}

// Create inserts res and assigns its ID.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    return r.rows.insert(ctx, res)
}

// GetByID returns ErrNotFound when no reservation has the id.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
    return r.rows.get(ctx, id)
}

// ListBySession returns every reservation of a session, cancelled ones
// included.
func (r *ReservationRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.Reservation, error) {
    return r.rows.filter(ctx, func(res model.Reservation) bool { return res.SessionID == sessionID })
}

// ListBySessions returns the reservations of any of the given sessions.
func (r *ReservationRepo) ListBySessions(ctx context.Context, sessionIDs []uint64) ([]model.Reservation, error) {
    set := make(map[uint64]struct{}, len(sessionIDs))
    for _, id := range sessionIDs {
        set[id] = struct{}{}
    }
    return r.rows.filter(ctx, func(res model.Reservation) bool {
        _, ok := set[res.SessionID]
        return ok
    })
}

// Search matches applicant name and canonical phone exactly.
func (r *ReservationRepo) Search(ctx context.Context, name, phone string) ([]model.Reservation, error) {
    return r.rows.filter(ctx, func(res model.Reservation) bool {
        return res.ApplicantName == name && res.PhoneNumber == phone
    })
}

// CountActive counts reservations of a session that still hold a seat.
func (r *ReservationRepo) CountActive(ctx context.Context, sessionID uint64) (int, error) {
    rows, err := r.rows.filter(ctx, func(res model.Reservation) bool {
        return res.SessionID == sessionID && res.Occupies()
    })
    return len(rows), err
}

// Update overwrites the stored reservation with the same ID.
func (r *ReservationRepo) Update(ctx context.Context, res model.Reservation) error {
    return r.rows.replace(ctx, res)
}
