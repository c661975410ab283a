package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/model"
)

// MemberHandler serves the student roster.
type MemberHandler struct{ Deps }

func NewMemberHandler(d Deps) *MemberHandler { return &MemberHandler{d} }

func (h *MemberHandler) Create(c echo.Context) error {
    var in model.MemberInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    m, err := h.Backend.Members().Create(ctx, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) List(c echo.Context) error {
    instructorID, err := instructorScope(c)
    if err != nil {
        return fail(c, err)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    ms, err := h.Backend.Members().ListByInstructor(ctx, instructorID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, ms)
}

func (h *MemberHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var in model.MemberInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    m, err := h.Backend.Members().Update(ctx, id, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, m)
}

func (h *MemberHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Backend.Members().Delete(ctx, id); err != nil {
        return fail(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
