package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/queue"
)

// SettlementHandler serves payout summaries and the pay action.
type SettlementHandler struct{ Deps }

func NewSettlementHandler(d Deps) *SettlementHandler { return &SettlementHandler{d} }

// ByInstructor handles GET /api/settlements/instructors/:id.  Id 0 means
// the caller.
func (h *SettlementHandler) ByInstructor(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    sum, err := h.Backend.Settlements().ListByInstructor(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}

// BySession handles GET /api/settlements/sessions/:id.
func (h *SettlementHandler) BySession(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    sum, err := h.Backend.Settlements().ListBySession(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}

// Pay handles POST /api/settlements/:id/pay.  The record owner or an
// admin may pay.
func (h *SettlementHandler) Pay(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    rec, err := h.Backend.Settlements().Pay(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    ev := queue.NewEvent(queue.SettlementPaid)
    ev.SettlementID = rec.ID
    ev.ReservationID = rec.ReservationID
    ev.SessionID = rec.SessionID
    ev.InstructorID = rec.InstructorID
    ev.Amount = rec.Amount
    h.publish(ev)
    return c.JSON(http.StatusOK, rec)
}
