package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/service"
)

// TemplateHandler serves reminder message templates.
type TemplateHandler struct {
    Deps
    messages *service.MessageService
}

func NewTemplateHandler(d Deps) *TemplateHandler {
    return &TemplateHandler{Deps: d, messages: service.NewMessageService(d.Backend)}
}

func (h *TemplateHandler) Create(c echo.Context) error {
    var in model.MessageTemplateInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Backend.MessageTemplates().Create(ctx, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, t)
}

func (h *TemplateHandler) List(c echo.Context) error {
    instructorID, err := instructorScope(c)
    if err != nil {
        return fail(c, err)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    ts, err := h.Backend.MessageTemplates().ListByInstructor(ctx, instructorID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, ts)
}

func (h *TemplateHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Backend.MessageTemplates().Get(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    var in model.MessageTemplateInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Backend.MessageTemplates().Update(ctx, id, in)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Backend.MessageTemplates().Delete(ctx, id); err != nil {
        return fail(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Preview handles GET /api/message-templates/:id/preview?reservationId=
// and answers the rendered text.
func (h *TemplateHandler) Preview(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c)
    }
    reservationID, ok := queryID(c, "reservationId")
    if !ok || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservationId is required"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    text, err := h.messages.Preview(ctx, id, reservationID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"text": text})
}
