package service

import (
    "context"
    "strings"

    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/utils"
)

// ReservationService drives the public booking flow and the self-service
// lookup.
type ReservationService struct {
    backend api.Backend
}

// NewReservationService wires a ReservationService to backend.
func NewReservationService(backend api.Backend) *ReservationService {
    return &ReservationService{backend: backend}
}

// Create books a seat for the applicant.  The phone number is validated
// and hyphenated here; capacity and the share gate are decided by the
// backend and its message is passed through.
func (s *ReservationService) Create(ctx context.Context, sessionID uint64, name, phone string) (uint64, error) {
    name = strings.TrimSpace(name)
    if name == "" {
        return 0, api.Validation("applicantName is required")
    }
    canonical, err := utils.NormalizePhone(phone)
    if err != nil {
        return 0, api.Validation(err.Error())
    }
    return s.backend.Reservations().Create(ctx, sessionID, model.ReservationInput{
        ApplicantName: name,
        PhoneNumber:   canonical,
    })
}

// Lookup finds the applicant's reservations by exact name and phone.
func (s *ReservationService) Lookup(ctx context.Context, name, phone string) ([]model.Reservation, error) {
    canonical, err := utils.NormalizePhone(phone)
    if err != nil {
        return nil, api.Validation(err.Error())
    }
    return s.backend.Reservations().Search(ctx, strings.TrimSpace(name), canonical)
}

// Query is one name and phone pair for LookupMany.
type Query struct {
    Name  string
    Phone string
}

// LookupMany runs every lookup concurrently and waits for all of them.
// Results are in query order; the first error is returned after all
// lookups finished.
func (s *ReservationService) LookupMany(ctx context.Context, queries []Query) ([][]model.Reservation, error) {
    out := make([][]model.Reservation, len(queries))
    var g errgroup.Group
    for i, q := range queries {
        i, q := i, q
        g.Go(func() error {
            rs, err := s.Lookup(ctx, q.Name, q.Phone)
            out[i] = rs
            return err
        })
    }
    return out, g.Wait()
}

// Cancel moves the reservation to CANCELLED.
func (s *ReservationService) Cancel(ctx context.Context, reservationID uint64) error {
    return s.backend.Reservations().Cancel(ctx, reservationID)
}

// ListBySession returns every reservation of a session.
func (s *ReservationService) ListBySession(ctx context.Context, sessionID uint64) ([]model.Reservation, error) {
    return s.backend.Reservations().ListBySession(ctx, sessionID)
}
