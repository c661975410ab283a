// Package repository defines the collections the mock backend persists
// through a storage.Store, and the sentinel errors shared by them.  Each
// collection is stored as one JSON array under its own key and is
// read-modify-written as a whole.
package repository

import "errors"

// ErrNotFound is returned when a row with the requested id or key does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrTokenReused is returned when a refresh token that was already
// rotated away is presented again.
var ErrTokenReused = errors.New("refresh token reused")

// ErrEmailExists is returned when registering an already used email.
var ErrEmailExists = errors.New("email already exists")
