package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/model"
)

// ListingHandler serves the instructor's class listings and the public
// share page.
type ListingHandler struct{ Deps }

func NewListingHandler(d Deps) *ListingHandler { return &ListingHandler{d} }

// Create handles POST /api/classes.  A missing instructorId means the
// caller.
func (h *ListingHandler) Create(c echo.Context) error {
    var in model.ListingInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    l, err := h.Backend.Listings().Create(ctx, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, l)
}

// List handles GET /api/classes?instructorId=.
func (h *ListingHandler) List(c echo.Context) error {
    instructorID, err := instructorScope(c)
    if err != nil {
        return fail(c, err)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    ls, err := h.Backend.Listings().ListByInstructor(ctx, instructorID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, ls)
}

func (h *ListingHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    l, err := h.Backend.Listings().Get(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, l)
}

// Update handles PUT /api/classes/:id.  Ownership never moves.
func (h *ListingHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var in model.ListingInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    l, err := h.Backend.Listings().Update(ctx, id, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Backend.Listings().Delete(ctx, id); err != nil {
        return fail(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

type shareReq struct {
    ShareStatus model.ShareStatus `json:"shareStatus"`
}

// SetShare handles PATCH /api/classes/:id/share.
func (h *ListingHandler) SetShare(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var req shareReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    l, err := h.Backend.Listings().SetShareStatus(ctx, id, req.ShareStatus)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, l)
}

// Shared handles GET /api/classes/shared/:shareCode.  It is public and
// served through the response cache.
func (h *ListingHandler) Shared(c echo.Context) error {
    code := c.Param("shareCode")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "share code required"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    sl, err := h.Backend.Listings().GetShared(ctx, code)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, sl)
}

// CreateSession handles POST /api/classes/:id/sessions.
func (h *ListingHandler) CreateSession(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var in model.SessionInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    s, err := h.Backend.Sessions().Create(ctx, id, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, s)
}

// Sessions handles GET /api/classes/:id/sessions.
func (h *ListingHandler) Sessions(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    ss, err := h.Backend.Sessions().ListByListing(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, ss)
}
