package handler

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "sync"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/middleware"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/repository"
    "github.com/iliyamo/oneday-class/internal/utils"
)

// Accounts verifies instructor credentials.  The mock backend implements
// it without touching its own login session.
type Accounts interface {
    VerifyCredentials(ctx context.Context, email, password string) (model.Instructor, error)
    Instructor(ctx context.Context, id uint64) (model.Instructor, error)
}

// AuthHandler issues and rotates the session cookies.
type AuthHandler struct {
    Cfg      config.Config
    Accounts Accounts
    Tokens   *repository.TokenRepo

    mu sync.Mutex // serializes read-modify-write of the token collection
}

func NewAuthHandler(cfg config.Config, accounts Accounts, tokens *repository.TokenRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Accounts: accounts, Tokens: tokens}
}

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// Login verifies the credentials and sets both cookies.  The body is the
// instructor without the password hash.  Empty fields are rejected by
// VerifyCredentials with the same validation error the local backend
// gives its own Login.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    in, err := h.Accounts.VerifyCredentials(ctx, req.Email, req.Password)
    if err != nil {
        return fail(c, err)
    }
    if err := h.issue(ctx, c, in); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, in)
}

// Refresh rotates the refresh cookie and issues a new access cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
    ck, err := c.Cookie(middleware.RefreshCookie)
    if err != nil || ck.Value == "" {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
    }
    hash := utils.HashRefreshRaw(ck.Value)
    ctx, cancel := reqCtx(c)
    defer cancel()

    h.mu.Lock()
    id, err := h.Tokens.ValidateRefresh(ctx, hash)
    switch {
    case err == nil:
        err = h.Tokens.RevokeByHash(ctx, hash)
    case errors.Is(err, repository.ErrTokenReused):
        // a rotated token came back: assume it leaked and end every session
        slog.Warn("refresh token reuse", "instructor_id", id)
        if rerr := h.Tokens.RevokeAllForInstructor(ctx, id); rerr != nil {
            err = rerr
        }
    }
    h.mu.Unlock()
    if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrTokenReused) {
        h.clear(c)
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
    }
    if err != nil {
        return fail(c, err)
    }

    in, err := h.Accounts.Instructor(ctx, id)
    if err != nil {
        h.clear(c)
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
    }
    if err := h.issue(ctx, c, in); err != nil {
        return fail(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Logout revokes the refresh token, when one is presented, and clears
// both cookies.  It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
    if ck, err := c.Cookie(middleware.RefreshCookie); err == nil && ck.Value != "" {
        ctx, cancel := reqCtx(c)
        defer cancel()
        h.mu.Lock()
        _ = h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(ck.Value))
        h.mu.Unlock()
    }
    h.clear(c)
    return c.NoContent(http.StatusNoContent)
}

// Status reports whether the access cookie is valid.  It never answers
// 401 so the login page can call it freely.
func (h *AuthHandler) Status(c echo.Context) error {
    ck, err := c.Cookie(middleware.AccessCookie)
    if err != nil || ck.Value == "" {
        return c.JSON(http.StatusOK, model.AuthStatus{})
    }
    id, _, err := utils.ParseAccessToken(h.Cfg.JWTSecret, ck.Value)
    if err != nil {
        return c.JSON(http.StatusOK, model.AuthStatus{})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    in, err := h.Accounts.Instructor(ctx, id)
    if err != nil {
        return c.JSON(http.StatusOK, model.AuthStatus{})
    }
    return c.JSON(http.StatusOK, model.AuthStatus{Authenticated: true, Instructor: &in})
}

// issue signs a new token pair for in and sets the cookies.
func (h *AuthHandler) issue(ctx context.Context, c echo.Context, in model.Instructor) error {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, in.ID, in.Role, h.Cfg.AccessTTL)
    if err != nil {
        return err
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTL)
    if err != nil {
        return err
    }
    h.mu.Lock()
    err = h.Tokens.StoreRefresh(ctx, in.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp)
    h.mu.Unlock()
    if err != nil {
        return err
    }
    c.SetCookie(h.cookie(middleware.AccessCookie, access.Token, "/", int(h.Cfg.AccessTTL.Seconds())))
    c.SetCookie(h.cookie(middleware.RefreshCookie, refresh.Raw, "/api/auth", int(h.Cfg.RefreshTTL.Seconds())))
    return nil
}

func (h *AuthHandler) clear(c echo.Context) {
    c.SetCookie(h.cookie(middleware.AccessCookie, "", "/", -1))
    c.SetCookie(h.cookie(middleware.RefreshCookie, "", "/api/auth", -1))
}

func (h *AuthHandler) cookie(name, value, path string, maxAge int) *http.Cookie {
    return &http.Cookie{
        Name:     name,
        Value:    value,
        Path:     path,
        MaxAge:   maxAge,
        HttpOnly: true,
        Secure:   h.Cfg.CookieSecure,
        SameSite: http.SameSiteLaxMode,
    }
}
