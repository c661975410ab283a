package api

import (
    "context"
    "errors"
    "fmt"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
    assert.True(t, IsValidation(Validation("bad")))
    assert.True(t, IsConflict(fmt.Errorf("wrapped: %w", Conflict("dup"))))
    assert.True(t, IsAuth(Unauthenticated("")))
    assert.True(t, IsNotFound(NotFound("gone")))
    assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestErrorMessages(t *testing.T) {
    assert.Equal(t, "session is full", Validation("session is full").Error())

    cause := errors.New("dial tcp: refused")
    err := Network(cause)
    assert.Equal(t, NetworkMessage, err.Error())
    assert.ErrorIs(t, err, cause)

    assert.Equal(t, "unexpected status 502", Unexpected(502, "").Error())
    assert.Equal(t, "auth error", Unauthenticated("").Error())
}

func TestForbiddenIsAuth(t *testing.T) {
    err := Forbidden()
    assert.True(t, IsAuth(err))
    assert.Equal(t, ForbiddenMessage, err.Error())
}

func TestCheckCredentials(t *testing.T) {
    email, err := CheckCredentials("  Kim@Example.com ", "pw")
    assert.NoError(t, err)
    assert.Equal(t, "kim@example.com", email)

    _, err = CheckCredentials("kim@example.com", "")
    assert.True(t, IsValidation(err))
    assert.Equal(t, CredentialsMessage, err.Error())

    _, err = CheckCredentials(" ", "pw")
    assert.True(t, IsValidation(err))
}

func TestCallerFrom(t *testing.T) {
    _, ok := CallerFrom(context.Background())
    assert.False(t, ok)

    id, ok := CallerFrom(WithCaller(context.Background(), 7))
    assert.True(t, ok)
    assert.Equal(t, uint64(7), id)
}
