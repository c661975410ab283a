package model

import "time"

// ReservationStatus is the state of a single booking.
type ReservationStatus string

const (
    ReservationPending   ReservationStatus = "PENDING"
    ReservationConfirmed ReservationStatus = "CONFIRMED"
    ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation records one applicant's booking of a session.  Reservations
// are never deleted; they only move to CANCELLED.
//
// Fields:
//  ID                 – primary key identifier.
//  SessionID          – booked session (back-reference).
//  ApplicantName      – name given on the booking form.
//  PhoneNumber        – canonical hyphenated phone number.
//  Status             – PENDING, CONFIRMED or CANCELLED.
//  AppliedAt          – when the booking was made.
//  SentD3Notification – the 3-days-before reminder went out.
//  SentD1Notification – the 1-day-before reminder went out.
type Reservation struct {
    ID                 uint64            `json:"reservationId"`
    SessionID          uint64            `json:"sessionId"`
    ApplicantName      string            `json:"applicantName"`
    PhoneNumber        string            `json:"phoneNumber"`
    Status             ReservationStatus `json:"status"`
    AppliedAt          time.Time         `json:"appliedAt"`
    SentD3Notification bool              `json:"sentD3Notification"`
    SentD1Notification bool              `json:"sentD1Notification"`
}

// Occupies reports whether the reservation holds a seat of its session.
// PENDING and CONFIRMED both count; CANCELLED frees the seat.
func (r Reservation) Occupies() bool {
    return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// ReservationInput is the public booking form.
type ReservationInput struct {
    ApplicantName string `json:"applicantName" validate:"required,max=50"`
    PhoneNumber   string `json:"phoneNumber" validate:"required"`
}

// ConfirmedCount counts CONFIRMED reservations.
func ConfirmedCount(rs []Reservation) int {
    n := 0
    for _, r := range rs {
        if r.Status == ReservationConfirmed {
            n++
        }
    }
    return n
}
