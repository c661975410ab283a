package remote

import (
    "context"
    "net/http"
    "net/url"
    "strconv"

    "github.com/iliyamo/oneday-class/internal/model"
)

type templateAPI struct{ c *Client }

func (a templateAPI) Create(ctx context.Context, in model.MessageTemplateInput) (model.MessageTemplate, error) {
    var out model.MessageTemplate
    err := a.c.do(ctx, http.MethodPost, "/api/message-templates", nil, in, &out)
    return out, err
}

func (a templateAPI) Get(ctx context.Context, id uint64) (model.MessageTemplate, error) {
    var out model.MessageTemplate
    err := a.c.do(ctx, http.MethodGet, idPath("/api/message-templates/%d", id), nil, nil, &out)
    return out, err
}

func (a templateAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.MessageTemplate, error) {
    out := []model.MessageTemplate{}
    q := url.Values{"instructorId": {strconv.FormatUint(instructorID, 10)}}
    err := a.c.do(ctx, http.MethodGet, "/api/message-templates", q, nil, &out)
    return out, err
}

func (a templateAPI) Update(ctx context.Context, id uint64, in model.MessageTemplateInput) (model.MessageTemplate, error) {
    var out model.MessageTemplate
    err := a.c.do(ctx, http.MethodPut, idPath("/api/message-templates/%d", id), nil, in, &out)
    return out, err
}

func (a templateAPI) Delete(ctx context.Context, id uint64) error {
    return a.c.do(ctx, http.MethodDelete, idPath("/api/message-templates/%d", id), nil, nil, nil)
}
