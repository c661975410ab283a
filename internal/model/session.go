package model

import (
    "errors"
    "time"
)

// SessionStatus is the booking state of a session.  FULL is derived from
// the reservation count; the others are set by the instructor.
type SessionStatus string

const (
    SessionRecruiting SessionStatus = "RECRUITING"
    SessionFull       SessionStatus = "FULL"
    SessionClosed     SessionStatus = "CLOSED"
    SessionFinished   SessionStatus = "FINISHED"
)

// Valid reports whether s is a known session status.
func (s SessionStatus) Valid() bool {
    switch s {
    case SessionRecruiting, SessionFull, SessionClosed, SessionFinished:
        return true
    }
    return false
}

var (
    ErrInvalidCapacity   = errors.New("capacity must be greater than zero")
    ErrSessionFull       = errors.New("session is full")
    ErrNotRecruiting     = errors.New("session is not accepting reservations")
    ErrManualFull        = errors.New("FULL cannot be set manually")
    ErrInvalidStatus     = errors.New("invalid session status")
    ErrStatusLockedFull  = errors.New("session is full; status cannot be changed")
    ErrInvalidTimeWindow = errors.New("start time must be before end time")
)

// Occupancy couples the capacity, the occupied seat count and the status
// of a session.  Every mutation recomputes the status so that a session
// whose count reached capacity is FULL until it is marked FINISHED.
type Occupancy struct {
    Capacity   int           `json:"capacity"`
    CurrentNum int           `json:"currentNum"`
    Status     SessionStatus `json:"status"`
}

// NewOccupancy returns an empty RECRUITING occupancy.
func NewOccupancy(capacity int) (Occupancy, error) {
    if capacity <= 0 {
        return Occupancy{}, ErrInvalidCapacity
    }
    return Occupancy{Capacity: capacity, Status: SessionRecruiting}, nil
}

// Reserve occupies one seat.
func (o *Occupancy) Reserve() error {
    if o.CurrentNum >= o.Capacity {
        return ErrSessionFull
    }
    if o.Status != SessionRecruiting {
        return ErrNotRecruiting
    }
    o.CurrentNum++
    o.settle()
    return nil
}

// Release frees one seat.  A FULL session falls back to RECRUITING.
func (o *Occupancy) Release() {
    if o.CurrentNum > 0 {
        o.CurrentNum--
    }
    o.settle()
}

// Override applies an instructor status change.  A full session may only
// be marked FINISHED.
func (o *Occupancy) Override(status SessionStatus) error {
    switch status {
    case SessionFull:
        return ErrManualFull
    case SessionRecruiting, SessionClosed, SessionFinished:
    default:
        return ErrInvalidStatus
    }
    if o.CurrentNum >= o.Capacity && status != SessionFinished {
        return ErrStatusLockedFull
    }
    o.Status = status
    return nil
}

// Remaining returns the number of free seats.
func (o Occupancy) Remaining() int {
    if n := o.Capacity - o.CurrentNum; n > 0 {
        return n
    }
    return 0
}

func (o *Occupancy) settle() {
    if o.CurrentNum >= o.Capacity {
        o.Status = SessionFull
    } else if o.Status == SessionFull {
        o.Status = SessionRecruiting
    }
}

// Session is one scheduled occurrence of a listing.  Date is YYYY-MM-DD
// and the times are HH:MM in the instructor's local time.
//
// Fields:
//  ID         – primary key identifier.
//  ListingID  – listing the session belongs to (back-reference).
//  Date       – calendar date of the session.
//  StartTime  – start time of day.
//  EndTime    – end time of day.
//  Price      – price per seat in whole currency units.
//  Occupancy  – capacity, occupied seats and status.
type Session struct {
    ID        uint64 `json:"id"`
    ListingID uint64 `json:"onedayClassId"`
    Date      string `json:"date"`
    StartTime string `json:"startTime"`
    EndTime   string `json:"endTime"`
    Price     int64  `json:"price"`
    Occupancy
    CreatedAt time.Time `json:"createdAt"`
}

// SessionInput carries the fields needed to schedule a session.
type SessionInput struct {
    Date      string `json:"date" validate:"required,datetime=2006-01-02"`
    StartTime string `json:"startTime" validate:"required,datetime=15:04"`
    EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
    Capacity  int    `json:"capacity"`
    Price     int64  `json:"price" validate:"gte=0"`
}

// CheckWindow validates the capacity and the ordering of the time window.
// Field formats are expected to be validated already.
func (in SessionInput) CheckWindow() error {
    if in.Capacity <= 0 {
        return ErrInvalidCapacity
    }
    start, err := time.Parse("15:04", in.StartTime)
    if err != nil {
        return err
    }
    end, err := time.Parse("15:04", in.EndTime)
    if err != nil {
        return err
    }
    if !start.Before(end) {
        return ErrInvalidTimeWindow
    }
    return nil
}
