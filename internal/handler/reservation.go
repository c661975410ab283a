package handler

import (
    "net/http"
    "strings"
    "sync"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/queue"
)

// ReservationHandler serves the public booking flow.  None of its routes
// require login; a reservation id or the name/phone pair is the
// applicant's only credential.
type ReservationHandler struct {
    Deps
    // cancelMu makes the status read and the cancel one step, so that
    // concurrent DELETEs publish a single cancel event.
    cancelMu sync.Mutex
}

func NewReservationHandler(d Deps) *ReservationHandler { return &ReservationHandler{Deps: d} }

// Create handles POST /api/reservations?onedayClassId=.  The query value
// names the session being booked.
func (h *ReservationHandler) Create(c echo.Context) error {
    sessionID, ok := queryID(c, "onedayClassId")
    if !ok || sessionID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "onedayClassId is required"})
    }
    var in model.ReservationInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    id, err := h.Backend.Reservations().Create(ctx, sessionID, in)
    if err != nil {
        return fail(c, err)
    }

    ev := queue.NewEvent(queue.ReservationCreated)
    ev.ReservationID = id
    ev.SessionID = sessionID
    if r, err := h.Backend.Reservations().Get(ctx, id); err == nil {
        ev.ApplicantName = r.ApplicantName
        ev.PhoneNumber = r.PhoneNumber
    }
    h.publish(ev)
    return c.JSON(http.StatusCreated, echo.Map{"reservationId": id})
}

func (h *ReservationHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    r, err := h.Backend.Reservations().Get(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, r)
}

// Search handles GET /api/reservations/search?name=&phone=.  Both
// parameters are required so one cannot enumerate bookings by name.
func (h *ReservationHandler) Search(c echo.Context) error {
    name := strings.TrimSpace(c.QueryParam("name"))
    phone := strings.TrimSpace(c.QueryParam("phone"))
    if name == "" || phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    rs, err := h.Backend.Reservations().Search(ctx, name, phone)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, rs)
}

// Cancel handles DELETE /api/reservations/:id.  Cancelling twice succeeds.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    h.cancelMu.Lock()
    before, err := h.Backend.Reservations().Get(ctx, id)
    if err == nil {
        err = h.Backend.Reservations().Cancel(ctx, id)
    }
    h.cancelMu.Unlock()
    if err != nil {
        return fail(c, err)
    }
    if before.Status != model.ReservationCancelled {
        ev := queue.NewEvent(queue.ReservationCancelled)
        ev.ReservationID = id
        ev.SessionID = before.SessionID
        ev.ApplicantName = before.ApplicantName
        ev.PhoneNumber = before.PhoneNumber
        h.publish(ev)
    }
    return c.NoContent(http.StatusNoContent)
}
