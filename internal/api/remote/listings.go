package remote

import (
    "context"
    "net/http"
    "net/url"
    "strconv"

    "github.com/iliyamo/oneday-class/internal/model"
)

type listingAPI struct{ c *Client }

func (a listingAPI) Create(ctx context.Context, in model.ListingInput) (model.Listing, error) {
    var out model.Listing
    err := a.c.do(ctx, http.MethodPost, "/api/classes", nil, in, &out)
    return out, err
}

func (a listingAPI) Get(ctx context.Context, id uint64) (model.Listing, error) {
    var out model.Listing
    err := a.c.do(ctx, http.MethodGet, idPath("/api/classes/%d", id), nil, nil, &out)
    return out, err
}

func (a listingAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Listing, error) {
    out := []model.Listing{}
    q := url.Values{"instructorId": {strconv.FormatUint(instructorID, 10)}}
    err := a.c.do(ctx, http.MethodGet, "/api/classes", q, nil, &out)
    return out, err
}

func (a listingAPI) Update(ctx context.Context, id uint64, in model.ListingInput) (model.Listing, error) {
    var out model.Listing
    err := a.c.do(ctx, http.MethodPut, idPath("/api/classes/%d", id), nil, in, &out)
    return out, err
}

func (a listingAPI) Delete(ctx context.Context, id uint64) error {
    return a.c.do(ctx, http.MethodDelete, idPath("/api/classes/%d", id), nil, nil, nil)
}

func (a listingAPI) SetShareStatus(ctx context.Context, id uint64, status model.ShareStatus) (model.Listing, error) {
    var out model.Listing
    body := map[string]model.ShareStatus{"shareStatus": status}
    err := a.c.do(ctx, http.MethodPatch, idPath("/api/classes/%d/share", id), nil, body, &out)
    return out, err
}

func (a listingAPI) GetShared(ctx context.Context, shareCode string) (model.SharedListing, error) {
    var out model.SharedListing
    err := a.c.do(ctx, http.MethodGet, "/api/classes/shared/"+url.PathEscape(shareCode), nil, nil, &out)
    if out.Sessions == nil {
        out.Sessions = []model.Session{}
    }
    return out, err
}
