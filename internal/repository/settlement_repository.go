package repository

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// SettlementRepo manages persistence for settlement records.
type SettlementRepo struct {
    rows collection[model.SettlementRecord]
}

// NewSettlementRepo constructs a SettlementRepo on store.
func NewSettlementRepo(store storage.Store) *SettlementRepo {
    return &SettlementRepo{rows: newCollection(store, "settlements", func(s *model.SettlementRecord) *uint64 { return &s.ID })}
}

// Create inserts rec and assigns its ID.
func (r *SettlementRepo) Create(ctx context.Context, rec *model.SettlementRecord) error {
    return r.rows.insert(ctx, rec)
}

// GetByID returns ErrNotFound when no record has the id.
func (r *SettlementRepo) GetByID(ctx context.Context, id uint64) (model.SettlementRecord, error) {
    return r.rows.get(ctx, id)
}

// ListByInstructor returns every record owed to an instructor.
func (r *SettlementRepo) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.SettlementRecord, error) {
    return r.rows.filter(ctx, func(s model.SettlementRecord) bool { return s.InstructorID == instructorID })
}

// ListBySession returns every record of a session.
func (r *SettlementRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.SettlementRecord, error) {
    return r.rows.filter(ctx, func(s model.SettlementRecord) bool { return s.SessionID == sessionID })
}

// Update overwrites the stored record with the same ID.
func (r *SettlementRepo) Update(ctx context.Context, rec model.SettlementRecord) error {
    return r.rows.replace(ctx, rec)
}

// DeleteReadyByReservation drops the READY record of a reservation.  PAID
// records are kept.
func (r *SettlementRepo) DeleteReadyByReservation(ctx context.Context, reservationID uint64) error {
    _, err := r.rows.removeWhere(ctx, func(s model.SettlementRecord) bool {
        return s.ReservationID == reservationID && s.Status == model.SettlementReady
    })
    return err
}
