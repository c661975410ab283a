package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "errors"   // distinguishes expired tokens from forged ones
    "net/http" // HTTP status codes for responses

    "github.com/golang-jwt/jwt/v5" // JWT error values
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/oneday-class/internal/utils" // access token parsing
)

// Cookie names of the session.  Both are HttpOnly; the refresh cookie is
// scoped to the auth routes.
const (
    AccessCookie  = "access_token"
    RefreshCookie = "refresh_token"
)

// Context keys set by JWTAuth.
const (
    ctxInstructorID = "instructor_id"
    ctxRole         = "role"
)

// JWTAuth returns an Echo middleware that validates the access token
// cookie and stores the instructor id and role in the request context.
// A missing or expired cookie yields 401 so that the client refreshes.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ck, err := c.Cookie(AccessCookie)
            if err != nil || ck.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
            }
            id, role, err := utils.ParseAccessToken(secret, ck.Value)
            if errors.Is(err, jwt.ErrTokenExpired) {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
            }
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(ctxInstructorID, id)
            c.Set(ctxRole, role)
            return next(c)
        }
    }
}
