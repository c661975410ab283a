package mock

import (
    "context"
    "errors"
    "strings"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/repository"
    "github.com/iliyamo/oneday-class/internal/utils"
)

type reservationAPI struct{ b *Backend }

// Create books one seat.  The listing must have its link enabled and the
// session must be RECRUITING with a free seat.  A READY settlement record
// worth the session price is created alongside.
func (a reservationAPI) Create(ctx context.Context, sessionID uint64, in model.ReservationInput) (uint64, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return 0, err
    }
    defer unlock()
    in.ApplicantName = strings.TrimSpace(in.ApplicantName)
    if err := a.b.check(in); err != nil {
        return 0, err
    }
    phone, err := utils.NormalizePhone(in.PhoneNumber)
    if err != nil {
        return 0, api.Validation(err.Error())
    }
    s, err := a.b.sessions.GetByID(ctx, sessionID)
    if err != nil {
        return 0, notFound(err, "session not found")
    }
    l, err := a.b.listings.GetByID(ctx, s.ListingID)
    if err != nil {
        return 0, notFound(err, "class not found")
    }
    if !l.AcceptsReservations() {
        return 0, api.Validation("reservation link is disabled")
    }
    if err := s.Reserve(); err != nil {
        return 0, api.Validation(err.Error())
    }

    now := a.b.clock()
    r := model.Reservation{
        SessionID:     s.ID,
        ApplicantName: in.ApplicantName,
        PhoneNumber:   phone,
        Status:        model.ReservationConfirmed,
        AppliedAt:     now,
    }
    if err := a.b.reservations.Create(ctx, &r); err != nil {
        return 0, err
    }
    if err := a.b.sessions.Update(ctx, s); err != nil {
        return 0, err
    }
    rec := model.SettlementRecord{
        InstructorID:  l.InstructorID,
        ReservationID: r.ID,
        SessionID:     s.ID,
        Amount:        s.Price,
        Status:        model.SettlementReady,
        CreatedAt:     now,
    }
    if err := a.b.settlements.Create(ctx, &rec); err != nil {
        return 0, err
    }
    return r.ID, nil
}

func (a reservationAPI) Get(ctx context.Context, id uint64) (model.Reservation, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return model.Reservation{}, err
    }
    defer unlock()
    r, err := a.b.reservations.GetByID(ctx, id)
    if err != nil {
        return model.Reservation{}, notFound(err, "reservation not found")
    }
    return r, nil
}

func (a reservationAPI) ListBySession(ctx context.Context, sessionID uint64) ([]model.Reservation, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if _, err := a.b.ownedSession(ctx, who, sessionID); err != nil {
        return nil, err
    }
    return a.b.reservations.ListBySession(ctx, sessionID)
}

// Search finds reservations by applicant name and phone in any format.
func (a reservationAPI) Search(ctx context.Context, name, phone string) ([]model.Reservation, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    name = strings.TrimSpace(name)
    if name == "" {
        return nil, api.Validation("applicantName is required")
    }
    canonical, err := utils.NormalizePhone(phone)
    if err != nil {
        return nil, api.Validation(err.Error())
    }
    return a.b.reservations.Search(ctx, name, canonical)
}

// Cancel frees the seat and drops the READY settlement record.  Cancelling
// twice is a no-op.
func (a reservationAPI) Cancel(ctx context.Context, id uint64) error {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    r, err := a.b.reservations.GetByID(ctx, id)
    if err != nil {
        return notFound(err, "reservation not found")
    }
    if r.Status == model.ReservationCancelled {
        return nil
    }
    held := r.Occupies()
    r.Status = model.ReservationCancelled
    if err := a.b.reservations.Update(ctx, r); err != nil {
        return err
    }
    if held {
        s, err := a.b.sessions.GetByID(ctx, r.SessionID)
        switch {
        case err == nil:
            s.Release()
            if err := a.b.sessions.Update(ctx, s); err != nil {
                return err
            }
        case !errors.Is(err, repository.ErrNotFound):
            return err
        }
    }
    return a.b.settlements.DeleteReadyByReservation(ctx, r.ID)
}
