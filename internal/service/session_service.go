// Package service holds the instructor-side workflows built on top of an
// api.Backend.  The same services run unchanged against the mock and the
// remote backend.
package service

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

// SessionService schedules sessions and reports their occupancy.
type SessionService struct {
    backend api.Backend
}

// NewSessionService wires a SessionService to backend.
func NewSessionService(backend api.Backend) *SessionService {
    return &SessionService{backend: backend}
}

// SessionWithCount is a session together with its CONFIRMED reservation
// count, which may differ from the stored CurrentNum.
type SessionWithCount struct {
    model.Session
    ConfirmedCount int `json:"confirmedCount"`
}

// Create checks the capacity and the time window before asking the
// backend, so obviously bad input never leaves the process.
func (s *SessionService) Create(ctx context.Context, listingID uint64, in model.SessionInput) (model.Session, error) {
    if err := in.CheckWindow(); err != nil {
        return model.Session{}, api.Validation(err.Error())
    }
    return s.backend.Sessions().Create(ctx, listingID, in)
}

// UpdateStatus applies a manual status override.  FULL is derived and
// cannot be requested.
func (s *SessionService) UpdateStatus(ctx context.Context, sessionID uint64, status model.SessionStatus) (model.Session, error) {
    if status == model.SessionFull {
        return model.Session{}, api.Validation(model.ErrManualFull.Error())
    }
    if !status.Valid() {
        return model.Session{}, api.Validation(model.ErrInvalidStatus.Error())
    }
    return s.backend.Sessions().UpdateStatus(ctx, sessionID, status)
}

// Delete removes a session.  A conflict from the backend is returned as
// is so its message reaches the user verbatim.
func (s *SessionService) Delete(ctx context.Context, sessionID uint64) error {
    return s.backend.Sessions().Delete(ctx, sessionID)
}

// ConfirmedCount fetches the session's reservations and counts the
// CONFIRMED ones.
func (s *SessionService) ConfirmedCount(ctx context.Context, sessionID uint64) (int, error) {
    rs, err := s.backend.Reservations().ListBySession(ctx, sessionID)
    if err != nil {
        return 0, err
    }
    return model.ConfirmedCount(rs), nil
}

// ListWithCounts returns every session of a listing with its confirmed
// count.  Reservations are fetched one session at a time.
func (s *SessionService) ListWithCounts(ctx context.Context, listingID uint64) ([]SessionWithCount, error) {
    sessions, err := s.backend.Sessions().ListByListing(ctx, listingID)
    if err != nil {
        return nil, err
    }
    out := make([]SessionWithCount, 0, len(sessions))
    for _, sess := range sessions {
        n, err := s.ConfirmedCount(ctx, sess.ID)
        if err != nil {
            return nil, err
        }
        out = append(out, SessionWithCount{Session: sess, ConfirmedCount: n})
    }
    return out, nil
}
