package mock

import (
    "context"
    "encoding/binary"
    "errors"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// current returns the instructor the call acts for: the caller attached
// with api.WithCaller, else the logged-in instructor.
func (b *Backend) current(ctx context.Context) (model.Instructor, error) {
    id, ok := api.CallerFrom(ctx)
    if !ok {
        raw, err := b.store.Get(ctx, sessionKey)
        if errors.Is(err, storage.ErrNotFound) || (err == nil && len(raw) != 8) {
            return model.Instructor{}, api.Unauthenticated(api.SessionExpiredMessage)
        }
        if err != nil {
            return model.Instructor{}, err
        }
        id = binary.BigEndian.Uint64(raw)
    }
    in, err := b.instructors.GetByID(ctx, id)
    if err != nil {
        // account vanished under the session
        return model.Instructor{}, api.Unauthenticated(api.SessionExpiredMessage)
    }
    return in.Public(), nil
}

// allow checks that who may act for instructorID.  Admins may act for
// anyone.
func allow(who model.Instructor, instructorID uint64) error {
    if who.IsAdmin() || who.ID == instructorID {
        return nil
    }
    return api.Forbidden()
}

// scope resolves an instructor filter, zero meaning the caller, and
// checks access to it.
func scope(who model.Instructor, instructorID uint64) (uint64, error) {
    if instructorID == 0 {
        return who.ID, nil
    }
    return instructorID, allow(who, instructorID)
}

func (b *Backend) ownedListing(ctx context.Context, who model.Instructor, id uint64) (model.Listing, error) {
    l, err := b.listings.GetByID(ctx, id)
    if err != nil {
        return model.Listing{}, notFound(err, "class not found")
    }
    return l, allow(who, l.InstructorID)
}

// ownedSession loads session id and checks access through its listing.
func (b *Backend) ownedSession(ctx context.Context, who model.Instructor, id uint64) (model.Session, error) {
    s, err := b.sessions.GetByID(ctx, id)
    if err != nil {
        return model.Session{}, notFound(err, "session not found")
    }
    if _, err := b.ownedListing(ctx, who, s.ListingID); err != nil {
        return model.Session{}, err
    }
    return s, nil
}

// enter is begin followed by current for calls that need a login.
func (b *Backend) enter(ctx context.Context) (model.Instructor, func(), error) {
    unlock, err := b.begin(ctx)
    if err != nil {
        return model.Instructor{}, nil, err
    }
    who, err := b.current(ctx)
    if err != nil {
        unlock()
        return model.Instructor{}, nil, err
    }
    return who, unlock, nil
}
