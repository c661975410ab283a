package mock

import (
    "context"
    "errors"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

type sessionAPI struct{ b *Backend }

func (a sessionAPI) Create(ctx context.Context, listingID uint64, in model.SessionInput) (model.Session, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Session{}, err
    }
    defer unlock()
    if _, err := a.b.ownedListing(ctx, who, listingID); err != nil {
        return model.Session{}, err
    }
    if err := a.b.check(in); err != nil {
        return model.Session{}, err
    }
    if err := in.CheckWindow(); err != nil {
        return model.Session{}, api.Validation(err.Error())
    }
    occ, err := model.NewOccupancy(in.Capacity)
    if err != nil {
        return model.Session{}, api.Validation(err.Error())
    }
    s := model.Session{
        ListingID: listingID,
        Date:      in.Date,
        StartTime: in.StartTime,
        EndTime:   in.EndTime,
        Price:     in.Price,
        Occupancy: occ,
        CreatedAt: a.b.clock(),
    }
    if err := a.b.sessions.Create(ctx, &s); err != nil {
        return model.Session{}, err
    }
    return s, nil
}

func (a sessionAPI) Get(ctx context.Context, id uint64) (model.Session, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Session{}, err
    }
    defer unlock()
    return a.b.ownedSession(ctx, who, id)
}

func (a sessionAPI) ListByListing(ctx context.Context, listingID uint64) ([]model.Session, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if _, err := a.b.ownedListing(ctx, who, listingID); err != nil {
        return nil, err
    }
    return a.b.sessions.ListByListing(ctx, listingID)
}

// UpdateStatus applies a manual override.  Reopening or closing a full
// session is a conflict; FULL itself is never accepted.
func (a sessionAPI) UpdateStatus(ctx context.Context, id uint64, status model.SessionStatus) (model.Session, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Session{}, err
    }
    defer unlock()
    s, err := a.b.ownedSession(ctx, who, id)
    if err != nil {
        return model.Session{}, err
    }
    if err := s.Override(status); err != nil {
        if errors.Is(err, model.ErrStatusLockedFull) {
            return model.Session{}, api.Conflict(err.Error())
        }
        return model.Session{}, api.Validation(err.Error())
    }
    if err := a.b.sessions.Update(ctx, s); err != nil {
        return model.Session{}, err
    }
    return s, nil
}

func (a sessionAPI) Delete(ctx context.Context, id uint64) error {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    if _, err := a.b.ownedSession(ctx, who, id); err != nil {
        return err
    }
    n, err := a.b.reservations.CountActive(ctx, id)
    if err != nil {
        return err
    }
    if n > 0 {
        return api.Conflict("cannot delete session with reservations")
    }
    return a.b.sessions.Delete(ctx, id)
}
