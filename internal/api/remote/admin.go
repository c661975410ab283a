package remote

import (
    "context"
    "net/http"

    "github.com/iliyamo/oneday-class/internal/model"
)

type adminAPI struct{ c *Client }

func (a adminAPI) ListInstructors(ctx context.Context) ([]model.InstructorOverview, error) {
    out := []model.InstructorOverview{}
    err := a.c.do(ctx, http.MethodGet, "/api/admin/instructors", nil, nil, &out)
    return out, err
}
