package mock

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/utils"
)

type listingAPI struct{ b *Backend }

// Create adds a listing.  A zero InstructorID means the caller.
func (a listingAPI) Create(ctx context.Context, in model.ListingInput) (model.Listing, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Listing{}, err
    }
    defer unlock()
    if in.InstructorID, err = scope(who, in.InstructorID); err != nil {
        return model.Listing{}, err
    }
    if err := a.b.check(in); err != nil {
        return model.Listing{}, err
    }
    if _, err := a.b.instructors.GetByID(ctx, in.InstructorID); err != nil {
        return model.Listing{}, notFound(err, "instructor not found")
    }
    now := a.b.clock()
    l := model.Listing{
        InstructorID: in.InstructorID,
        ShareCode:    utils.NewShareCode(),
        ShareStatus:  model.ShareEnabled,
        CreatedAt:    now,
        UpdatedAt:    now,
    }
    l.Apply(in)
    if err := a.b.listings.Create(ctx, &l); err != nil {
        return model.Listing{}, err
    }
    return l, nil
}

func (a listingAPI) Get(ctx context.Context, id uint64) (model.Listing, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Listing{}, err
    }
    defer unlock()
    l, err := a.b.ownedListing(ctx, who, id)
    if err != nil {
        return model.Listing{}, err
    }
    return l, nil
}

func (a listingAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Listing, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if instructorID, err = scope(who, instructorID); err != nil {
        return nil, err
    }
    return a.b.listings.ListByInstructor(ctx, instructorID)
}

// Update replaces the editable fields.  Ownership never changes.
func (a listingAPI) Update(ctx context.Context, id uint64, in model.ListingInput) (model.Listing, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Listing{}, err
    }
    defer unlock()
    l, err := a.b.ownedListing(ctx, who, id)
    if err != nil {
        return model.Listing{}, err
    }
    in.InstructorID = l.InstructorID
    if err := a.b.check(in); err != nil {
        return model.Listing{}, err
    }
    l.Apply(in)
    l.UpdatedAt = a.b.clock()
    if err := a.b.listings.Update(ctx, l); err != nil {
        return model.Listing{}, err
    }
    return l, nil
}

// Delete removes the listing and its sessions.  It is refused while any
// session still holds reservations.
func (a listingAPI) Delete(ctx context.Context, id uint64) error {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    if _, err := a.b.ownedListing(ctx, who, id); err != nil {
        return err
    }
    sessions, err := a.b.sessions.ListByListing(ctx, id)
    if err != nil {
        return err
    }
    for _, s := range sessions {
        n, err := a.b.reservations.CountActive(ctx, s.ID)
        if err != nil {
            return err
        }
        if n > 0 {
            return api.Conflict("cannot delete class with reservations")
        }
    }
    if err := a.b.sessions.DeleteByListing(ctx, id); err != nil {
        return err
    }
    return a.b.listings.Delete(ctx, id)
}

func (a listingAPI) SetShareStatus(ctx context.Context, id uint64, status model.ShareStatus) (model.Listing, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Listing{}, err
    }
    defer unlock()
    l, err := a.b.ownedListing(ctx, who, id)
    if err != nil {
        return model.Listing{}, err
    }
    if !status.Valid() {
        return model.Listing{}, api.Validation("invalid share status")
    }
    l.ShareStatus = status
    l.UpdatedAt = a.b.clock()
    if err := a.b.listings.Update(ctx, l); err != nil {
        return model.Listing{}, err
    }
    return l, nil
}

// GetShared resolves a public link.  Disabled listings are still
// returned so the booking page can say why it is closed.
func (a listingAPI) GetShared(ctx context.Context, shareCode string) (model.SharedListing, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return model.SharedListing{}, err
    }
    defer unlock()
    l, err := a.b.listings.GetByShareCode(ctx, shareCode)
    if err != nil {
        return model.SharedListing{}, notFound(err, "class not found")
    }
    sessions, err := a.b.sessions.ListByListing(ctx, l.ID)
    if err != nil {
        return model.SharedListing{}, err
    }
    return model.SharedListing{Listing: l, Sessions: sessions}, nil
}
