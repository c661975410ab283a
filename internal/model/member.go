package model

import "time"

// Member is an entry of an instructor's student roster.
type Member struct {
    ID           uint64    `json:"id"`
    InstructorID uint64    `json:"instructorId"`
    Name         string    `json:"name"`
    PhoneNumber  string    `json:"phoneNumber"`
    Memo         string    `json:"memo"`
    CreatedAt    time.Time `json:"createdAt"`
}

// MemberInput carries the editable member fields.
type MemberInput struct {
    InstructorID uint64 `json:"instructorId" validate:"required"`
    Name         string `json:"name" validate:"required,max=50"`
    PhoneNumber  string `json:"phoneNumber" validate:"required"`
    Memo         string `json:"memo" validate:"max=1000"`
}
