// Package api declares the client layer the rest of the module programs
// against: one interface per resource, bundled by Backend.  The remote
// package implements it over HTTP and the mock package over a local
// key-value store; both must return the same fields and the same errors
// for the same operation.
package api

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
)

// Backend bundles the resource clients.  Everything except the auth
// calls, GetShared and the public reservation calls needs a logged-in
// instructor and is limited to that instructor's data; admins may act for
// anyone.  Where a method takes an instructor id, zero means the caller.
type Backend interface {
    Auth() AuthAPI
    Listings() ListingAPI
    Sessions() SessionAPI
    Reservations() ReservationAPI
    Members() MemberAPI
    Settlements() SettlementAPI
    MessageTemplates() MessageTemplateAPI
    Admin() AdminAPI
}

// AuthAPI manages the instructor login session.
type AuthAPI interface {
    Login(ctx context.Context, email, password string) (model.Instructor, error)
    Logout(ctx context.Context) error
    Refresh(ctx context.Context) error
    Status(ctx context.Context) (model.AuthStatus, error)
}

// ListingAPI manages listings (class templates).
type ListingAPI interface {
    Create(ctx context.Context, in model.ListingInput) (model.Listing, error)
    Get(ctx context.Context, id uint64) (model.Listing, error)
    ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Listing, error)
    Update(ctx context.Context, id uint64, in model.ListingInput) (model.Listing, error)
    Delete(ctx context.Context, id uint64) error
    SetShareStatus(ctx context.Context, id uint64, status model.ShareStatus) (model.Listing, error)
    GetShared(ctx context.Context, shareCode string) (model.SharedListing, error)
}

// SessionAPI manages sessions of a listing.
type SessionAPI interface {
    Create(ctx context.Context, listingID uint64, in model.SessionInput) (model.Session, error)
    Get(ctx context.Context, id uint64) (model.Session, error)
    ListByListing(ctx context.Context, listingID uint64) ([]model.Session, error)
    UpdateStatus(ctx context.Context, id uint64, status model.SessionStatus) (model.Session, error)
    Delete(ctx context.Context, id uint64) error
}

// ReservationAPI manages bookings.  Create, Get, Search and Cancel are
// available without login.
type ReservationAPI interface {
    Create(ctx context.Context, sessionID uint64, in model.ReservationInput) (uint64, error)
    Get(ctx context.Context, id uint64) (model.Reservation, error)
    ListBySession(ctx context.Context, sessionID uint64) ([]model.Reservation, error)
    Search(ctx context.Context, name, phone string) ([]model.Reservation, error)
    Cancel(ctx context.Context, id uint64) error
}

// MemberAPI manages the student roster.
type MemberAPI interface {
    Create(ctx context.Context, in model.MemberInput) (model.Member, error)
    ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Member, error)
    Update(ctx context.Context, id uint64, in model.MemberInput) (model.Member, error)
    Delete(ctx context.Context, id uint64) error
}

// SettlementAPI reads payout records and pays them one at a time.
type SettlementAPI interface {
    ListByInstructor(ctx context.Context, instructorID uint64) (model.SettlementSummary, error)
    ListBySession(ctx context.Context, sessionID uint64) (model.SettlementSummary, error)
    Pay(ctx context.Context, id uint64) (model.SettlementRecord, error)
}

// MessageTemplateAPI manages reminder message templates.
type MessageTemplateAPI interface {
    Create(ctx context.Context, in model.MessageTemplateInput) (model.MessageTemplate, error)
    Get(ctx context.Context, id uint64) (model.MessageTemplate, error)
    ListByInstructor(ctx context.Context, instructorID uint64) ([]model.MessageTemplate, error)
    Update(ctx context.Context, id uint64, in model.MessageTemplateInput) (model.MessageTemplate, error)
    Delete(ctx context.Context, id uint64) error
}

// AdminAPI exposes admin-only aggregates.
type AdminAPI interface {
    ListInstructors(ctx context.Context) ([]model.InstructorOverview, error)
}
