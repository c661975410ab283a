package remote

import (
    "context"
    "net/http"

    "github.com/iliyamo/oneday-class/internal/model"
)

type sessionAPI struct{ c *Client }

func (a sessionAPI) Create(ctx context.Context, listingID uint64, in model.SessionInput) (model.Session, error) {
    var out model.Session
    err := a.c.do(ctx, http.MethodPost, idPath("/api/classes/%d/sessions", listingID), nil, in, &out)
    return out, err
}

func (a sessionAPI) Get(ctx context.Context, id uint64) (model.Session, error) {
    var out model.Session
    err := a.c.do(ctx, http.MethodGet, idPath("/api/sessions/%d", id), nil, nil, &out)
    return out, err
}

func (a sessionAPI) ListByListing(ctx context.Context, listingID uint64) ([]model.Session, error) {
    out := []model.Session{}
    err := a.c.do(ctx, http.MethodGet, idPath("/api/classes/%d/sessions", listingID), nil, nil, &out)
    return out, err
}

func (a sessionAPI) UpdateStatus(ctx context.Context, id uint64, status model.SessionStatus) (model.Session, error) {
    var out model.Session
    body := map[string]model.SessionStatus{"status": status}
    err := a.c.do(ctx, http.MethodPatch, idPath("/api/sessions/%d/status", id), nil, body, &out)
    return out, err
}

func (a sessionAPI) Delete(ctx context.Context, id uint64) error {
    return a.c.do(ctx, http.MethodDelete, idPath("/api/sessions/%d", id), nil, nil, nil)
}
