package model

import (
    "strings"
    "time"
)

// MessageType says when a message template is sent.
type MessageType string

const (
    MessageConfirmation MessageType = "CONFIRMATION"
    MessageD3           MessageType = "D3"
    MessageD1           MessageType = "D1"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
    return t == MessageConfirmation || t == MessageD3 || t == MessageD1
}

// MessageTemplate is the text an instructor sends to applicants.  The
// body may contain the placeholders listed in MessageVars.
type MessageTemplate struct {
    ID           uint64      `json:"id"`
    InstructorID uint64      `json:"instructorId"`
    Type         MessageType `json:"type"`
    Title        string      `json:"title"`
    Body         string      `json:"body"`
    UpdatedAt    time.Time   `json:"updatedAt"`
}

// MessageTemplateInput carries the editable template fields.
type MessageTemplateInput struct {
    InstructorID uint64      `json:"instructorId" validate:"required"`
    Type         MessageType `json:"type" validate:"required,oneof=CONFIRMATION D3 D1"`
    Title        string      `json:"title" validate:"required,max=100"`
    Body         string      `json:"body" validate:"required,max=2000"`
}

// MessageVars are the values substituted into a template body.
type MessageVars struct {
    Name      string
    ClassName string
    Date      string
    StartTime string
    EndTime   string
    Location  string
}

// VarsFor builds the substitution values of a reservation.
func VarsFor(r Reservation, s Session, l Listing) MessageVars {
    loc := l.Location
    if l.LocationDetail != "" {
        loc += " " + l.LocationDetail
    }
    return MessageVars{
        Name:      r.ApplicantName,
        ClassName: l.Name,
        Date:      s.Date,
        StartTime: s.StartTime,
        EndTime:   s.EndTime,
        Location:  loc,
    }
}

// Render substitutes v into the template body.  Unknown placeholders are
// left as written.
func (t MessageTemplate) Render(v MessageVars) string {
    return strings.NewReplacer(
        "{name}", v.Name,
        "{className}", v.ClassName,
        "{date}", v.Date,
        "{startTime}", v.StartTime,
        "{endTime}", v.EndTime,
        "{location}", v.Location,
    ).Replace(t.Body)
}
