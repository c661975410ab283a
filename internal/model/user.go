package model

import "time"

// Instructor roles.
const (
    RoleInstructor = "INSTRUCTOR"
    RoleAdmin      = "ADMIN"
)

// Instructor is an account that owns listings.  The password hash is a
// bcrypt digest and never leaves the backend.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique, lower-cased login email.
//  Name         – display name.
//  Role         – INSTRUCTOR or ADMIN.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Instructor struct {
    ID           uint64    `json:"id"`
    Email        string    `json:"email"`
    Name         string    `json:"name"`
    Role         string    `json:"role"`
    PasswordHash string    `json:"passwordHash,omitempty"`
    CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy without the password hash.
func (i Instructor) Public() Instructor {
    i.PasswordHash = ""
    return i
}

// IsAdmin reports whether the instructor has the ADMIN role.
func (i Instructor) IsAdmin() bool { return i.Role == RoleAdmin }

// AuthStatus answers "who am I" for the current session.
type AuthStatus struct {
    Authenticated bool        `json:"authenticated"`
    Instructor    *Instructor `json:"instructor,omitempty"`
}

// InstructorOverview is an admin listing row with denormalized counts.
type InstructorOverview struct {
    Instructor
    OnedayClassCount int `json:"onedayClassCount"`
    SessionCount     int `json:"sessionCount"`
    ReservationCount int `json:"reservationCount"`
}
