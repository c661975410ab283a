package service

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

// MessageService renders reminder templates for a reservation.
type MessageService struct {
    backend api.Backend
}

func NewMessageService(backend api.Backend) *MessageService {
    return &MessageService{backend: backend}
}

// Preview fills the template with the reservation's applicant, session
// and listing.
func (s *MessageService) Preview(ctx context.Context, templateID, reservationID uint64) (string, error) {
    tpl, err := s.backend.MessageTemplates().Get(ctx, templateID)
    if err != nil {
        return "", err
    }
    r, err := s.backend.Reservations().Get(ctx, reservationID)
    if err != nil {
        return "", err
    }
    sess, err := s.backend.Sessions().Get(ctx, r.SessionID)
    if err != nil {
        return "", err
    }
    l, err := s.backend.Listings().Get(ctx, sess.ListingID)
    if err != nil {
        return "", err
    }
    return tpl.Render(model.VarsFor(r, sess, l)), nil
}
