package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// AdminHandler serves admin-only aggregates.
type AdminHandler struct{ Deps }

func NewAdminHandler(d Deps) *AdminHandler { return &AdminHandler{d} }

// Instructors handles GET /api/admin/instructors.
func (h *AdminHandler) Instructors(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    out, err := h.Backend.Admin().ListInstructors(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, out)
}
