package model

import "time"

// ShareStatus gates whether the public booking page of a listing accepts
// new reservations.
type ShareStatus string

const (
    ShareEnabled  ShareStatus = "ENABLED"
    ShareDisabled ShareStatus = "DISABLED"
)

// Valid reports whether s is one of the known share statuses.
func (s ShareStatus) Valid() bool {
    return s == ShareEnabled || s == ShareDisabled
}

// Listing is an instructor's reusable class definition (called a
// "template" by the booking pages).  Sessions are scheduled under a
// listing and the share code is the public link identifier.
//
// Fields:
//  ID                 – primary key identifier.
//  InstructorID       – owning instructor.
//  Name               – class name shown on the booking page.
//  Description        – free text description.
//  Location           – address line.
//  LocationDetail     – floor, room or other directions.
//  Preparation        – what applicants should bring.
//  Instruction        – notes shown after booking.
//  CancellationPolicy – refund and cancellation terms.
//  ParkingInfo        – parking availability.
//  ImageURLs          – uploaded images in display order.
//  ShareCode          – unique public link code.
//  ShareStatus        – ENABLED or DISABLED.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Listing struct {
    ID                 uint64      `json:"id"`
    InstructorID       uint64      `json:"instructorId"`
    Name               string      `json:"name"`
    Description        string      `json:"description"`
    Location           string      `json:"location"`
    LocationDetail     string      `json:"locationDetail"`
    Preparation        string      `json:"preparation"`
    Instruction        string      `json:"instruction"`
    CancellationPolicy string      `json:"cancellationPolicy"`
    ParkingInfo        string      `json:"parkingInfo"`
    ImageURLs          []string    `json:"imageUrls"`
    ShareCode          string      `json:"shareCode"`
    ShareStatus        ShareStatus `json:"shareStatus"`
    CreatedAt          time.Time   `json:"createdAt"`
    UpdatedAt          time.Time   `json:"updatedAt"`
}

// AcceptsReservations reports whether the public booking flow may create
// reservations for sessions of this listing.  Session capacity is checked
// separately.
func (l Listing) AcceptsReservations() bool {
    return l.ShareStatus == ShareEnabled
}

// ListingInput carries the editable fields of a listing for create and
// update operations.
type ListingInput struct {
    InstructorID       uint64   `json:"instructorId" validate:"required"`
    Name               string   `json:"name" validate:"required,max=100"`
    Description        string   `json:"description" validate:"max=5000"`
    Location           string   `json:"location" validate:"required,max=255"`
    LocationDetail     string   `json:"locationDetail" validate:"max=255"`
    Preparation        string   `json:"preparation" validate:"max=2000"`
    Instruction        string   `json:"instruction" validate:"max=2000"`
    CancellationPolicy string   `json:"cancellationPolicy" validate:"max=2000"`
    ParkingInfo        string   `json:"parkingInfo" validate:"max=500"`
    ImageURLs          []string `json:"imageUrls" validate:"max=10,dive,url"`
}

// Apply copies the editable fields of in onto l.
func (l *Listing) Apply(in ListingInput) {
    l.Name = in.Name
    l.Description = in.Description
    l.Location = in.Location
    l.LocationDetail = in.LocationDetail
    l.Preparation = in.Preparation
    l.Instruction = in.Instruction
    l.CancellationPolicy = in.CancellationPolicy
    l.ParkingInfo = in.ParkingInfo
    l.ImageURLs = append([]string(nil), in.ImageURLs...)
}

// SharedListing is what the public booking page receives for a share
// code: the listing and every session scheduled under it.
type SharedListing struct {
    Listing  Listing   `json:"onedayClass"`
    Sessions []Session `json:"sessions"`
}
