package remote

import (
    "context"
    "net/http"

    "github.com/iliyamo/oneday-class/internal/model"
)

type authAPI struct{ c *Client }

func (a authAPI) Login(ctx context.Context, email, password string) (model.Instructor, error) {
    var out model.Instructor
    body := map[string]string{"email": email, "password": password}
    err := a.c.do(ctx, http.MethodPost, loginPath, nil, body, &out)
    return out, err
}

// Logout ends the server session and drops the local cookies even when
// the server call fails.
func (a authAPI) Logout(ctx context.Context) error {
    err := a.c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
    a.c.jar.Reset()
    return err
}

func (a authAPI) Refresh(ctx context.Context) error {
    return a.c.refresh(ctx)
}

func (a authAPI) Status(ctx context.Context) (model.AuthStatus, error) {
    var out model.AuthStatus
    err := a.c.send(ctx, http.MethodGet, "/api/auth/status", nil, nil, &out)
    return out, err
}
