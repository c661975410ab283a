package utils

import (
    "errors"
    "regexp"
    "strings"
)

// ErrInvalidPhone is returned when a phone number does not have 9 to 11
// digits.
var ErrInvalidPhone = errors.New("phone number must have 9 to 11 digits")

// phonePattern splits a digit string into area code, middle block and the
// final four digits.  Area codes are tried in order: Seoul (02), 0505
// numbers, 1xxx service numbers and the other 0xx codes.
var phonePattern = regexp.MustCompile(`^(02|0505|1[0-9]{3}|0[0-9]{2})([0-9]+)([0-9]{4})$`)

// Digits strips every non-digit rune from raw.
func Digits(raw string) string {
    var b strings.Builder
    for _, r := range raw {
        if r >= '0' && r <= '9' {
            b.WriteRune(r)
        }
    }
    return b.String()
}

// FormatPhone returns the hyphenated form of raw.  Digit strings that do
// not match a known area code are returned as bare digits.  FormatPhone is
// idempotent.
func FormatPhone(raw string) string {
    d := Digits(raw)
    if m := phonePattern.FindStringSubmatch(d); m != nil {
        return m[1] + "-" + m[2] + "-" + m[3]
    }
    return d
}

// NormalizePhone validates raw and returns its canonical form.
func NormalizePhone(raw string) (string, error) {
    d := Digits(raw)
    if len(d) < 9 || len(d) > 11 {
        return "", ErrInvalidPhone
    }
    return FormatPhone(d), nil
}
