package remote

import (
    "context"
    "net/http"
    "net/url"
    "strconv"

    "github.com/iliyamo/oneday-class/internal/model"
)

type memberAPI struct{ c *Client }

func (a memberAPI) Create(ctx context.Context, in model.MemberInput) (model.Member, error) {
    var out model.Member
    err := a.c.do(ctx, http.MethodPost, "/api/members", nil, in, &out)
    return out, err
}

func (a memberAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Member, error) {
    out := []model.Member{}
    q := url.Values{"instructorId": {strconv.FormatUint(instructorID, 10)}}
    err := a.c.do(ctx, http.MethodGet, "/api/members", q, nil, &out)
    return out, err
}

func (a memberAPI) Update(ctx context.Context, id uint64, in model.MemberInput) (model.Member, error) {
    var out model.Member
    err := a.c.do(ctx, http.MethodPut, idPath("/api/members/%d", id), nil, in, &out)
    return out, err
}

func (a memberAPI) Delete(ctx context.Context, id uint64) error {
    return a.c.do(ctx, http.MethodDelete, idPath("/api/members/%d", id), nil, nil, nil)
}
