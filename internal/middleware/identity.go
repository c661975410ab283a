package middleware

// identity.go exposes the caller identity stored by JWTAuth to handlers
// and to the other middleware.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// InstructorID returns the authenticated instructor id, if any.
func InstructorID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxInstructorID).(uint64)
    return id, ok && id != 0
}

// Role returns the role claim of the caller or "".
func Role(c echo.Context) string {
    r, _ := c.Get(ctxRole).(string)
    return r
}

// callerKey identifies the caller for rate limiting.  Unauthenticated
// callers share the "guest" bucket of their IP.
func callerKey(c echo.Context) string {
    if id, ok := InstructorID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "guest"
}
