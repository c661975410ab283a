package mock

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

type adminAPI struct{ b *Backend }

// ListInstructors returns every account with its listing, session and
// active reservation counts.  Admins only.
func (a adminAPI) ListInstructors(ctx context.Context) ([]model.InstructorOverview, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if !who.IsAdmin() {
        return nil, api.Forbidden()
    }
    all, err := a.b.instructors.List(ctx)
    if err != nil {
        return nil, err
    }
    out := make([]model.InstructorOverview, 0, len(all))
    for _, in := range all {
        row := model.InstructorOverview{Instructor: in.Public()}
        listings, err := a.b.listings.ListByInstructor(ctx, in.ID)
        if err != nil {
            return nil, err
        }
        row.OnedayClassCount = len(listings)
        ids := make([]uint64, 0, len(listings))
        for _, l := range listings {
            ids = append(ids, l.ID)
        }
        if len(ids) > 0 {
            sessions, err := a.b.sessions.ListByListings(ctx, ids)
            if err != nil {
                return nil, err
            }
            row.SessionCount = len(sessions)
            sids := make([]uint64, 0, len(sessions))
            for _, s := range sessions {
                sids = append(sids, s.ID)
            }
            rs, err := a.b.reservations.ListBySessions(ctx, sids)
            if err != nil {
                return nil, err
            }
            for _, r := range rs {
                if r.Occupies() {
                    row.ReservationCount++
                }
            }
        }
        out = append(out, row)
    }
    return out, nil
}
