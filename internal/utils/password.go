package utils

import (
    "strings"

    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt digest of plain.  Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
    if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
        cost = bcrypt.DefaultCost
    }
    b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

// VerifyPassword compares a bcrypt digest with a plain password.
func VerifyPassword(hash, plain string) bool {
    if hash == "" {
        return false
    }
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewShareCode returns a fresh public link code for a listing.
func NewShareCode() string {
    return strings.ReplaceAll(uuid.NewString(), "-", "")
}
