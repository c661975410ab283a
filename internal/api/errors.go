package api

import (
    "errors"
    "fmt"
    "net/http"
    "strings"
)

// Kind classifies an API failure.
type Kind int

const (
    KindUnknown Kind = iota
    KindValidation
    KindConflict
    KindAuth
    KindNotFound
    KindNetwork
)

func (k Kind) String() string {
    switch k {
    case KindValidation:
        return "validation"
    case KindConflict:
        return "conflict"
    case KindAuth:
        return "auth"
    case KindNotFound:
        return "not_found"
    case KindNetwork:
        return "network"
    }
    return "unknown"
}

// Messages shared by both backends so callers see the same text.
const (
    NetworkMessage        = "server connection failed"
    SessionExpiredMessage = "session expired, please log in again"
    ForbiddenMessage      = "forbidden"
    CredentialsMessage    = "email/password required"
)

// Error is the typed failure every Backend method returns.  Message is
// the server text passed through verbatim.
type Error struct {
    Kind    Kind
    Status  int
    Message string
    Err     error
}

func (e *Error) Error() string {
    if e.Message != "" {
        return e.Message
    }
    if e.Err != nil {
        return e.Err.Error()
    }
    return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad input or a rejected booking.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Conflict reports a state transition that is not allowed.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// Unauthenticated reports a missing or expired session.
func Unauthenticated(msg string) error { return &Error{Kind: KindAuth, Message: msg} }

// Forbidden reports a logged-in caller acting on another instructor's
// data.  It carries 403 so the dev server answers with that status.
func Forbidden() error {
    return &Error{Kind: KindAuth, Status: http.StatusForbidden, Message: ForbiddenMessage}
}

// NotFound reports a missing resource.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// Network wraps a transport failure.
func Network(err error) error { return &Error{Kind: KindNetwork, Message: NetworkMessage, Err: err} }

// Unexpected wraps an unclassified server failure.
func Unexpected(status int, msg string) error {
    if msg == "" {
        msg = fmt.Sprintf("unexpected status %d", status)
    }
    return &Error{Kind: KindUnknown, Status: status, Message: msg}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
    var e *Error
    if errors.As(err, &e) {
        return e.Kind
    }
    return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }

// CheckCredentials normalizes a login email and rejects an empty email
// or password.
func CheckCredentials(email, password string) (string, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    if email == "" || password == "" {
        return "", Validation(CredentialsMessage)
    }
    return email, nil
}
