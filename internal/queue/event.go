// Package queue defines the reservation events exchanged over RabbitMQ,
// the publisher used by the dev server and the consumer that appends them
// to logs/reservation.log.
package queue

import (
    "time"

    "github.com/google/uuid"
)

// EventType names what happened.
type EventType string

const (
    ReservationCreated   EventType = "reservation.created"
    ReservationCancelled EventType = "reservation.cancelled"
    SettlementPaid       EventType = "settlement.paid"
)

// Event carries enough context for downstream consumers (reminder
// senders, audit logs) to act without querying the backend.
type Event struct {
    ID            string    `json:"event_id"`
    Type          EventType `json:"type"`
    ReservationID uint64    `json:"reservation_id,omitempty"`
    SessionID     uint64    `json:"session_id,omitempty"`
    SettlementID  uint64    `json:"settlement_id,omitempty"`
    InstructorID  uint64    `json:"instructor_id,omitempty"`
    ApplicantName string    `json:"applicant_name,omitempty"`
    PhoneNumber   string    `json:"phone_number,omitempty"`
    Amount        int64     `json:"amount,omitempty"`
    OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh id and the current time.
func NewEvent(t EventType) Event {
    return Event{ID: uuid.NewString(), Type: t, OccurredAt: time.Now().UTC()}
}
