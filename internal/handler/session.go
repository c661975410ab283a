package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/model"
)

// SessionHandler serves single sessions.
type SessionHandler struct{ Deps }

func NewSessionHandler(d Deps) *SessionHandler { return &SessionHandler{d} }

func (h *SessionHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    s, err := h.Backend.Sessions().Get(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, s)
}

func (h *SessionHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Backend.Sessions().Delete(ctx, id); err != nil {
        return fail(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

type statusReq struct {
    Status model.SessionStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/sessions/:id/status.
func (h *SessionHandler) UpdateStatus(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var req statusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    s, err := h.Backend.Sessions().UpdateStatus(ctx, id, req.Status)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, s)
}

// Reservations handles GET /api/sessions/:id/reservations.
func (h *SessionHandler) Reservations(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    rs, err := h.Backend.Reservations().ListBySession(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, rs)
}
