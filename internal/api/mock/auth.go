package mock

import (
    "context"
    "encoding/binary"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

type authAPI struct{ b *Backend }

func (a authAPI) Login(ctx context.Context, email, password string) (model.Instructor, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return model.Instructor{}, err
    }
    defer unlock()
    in, err := a.b.verify(ctx, email, password)
    if err != nil {
        return model.Instructor{}, err
    }
    buf := make([]byte, 8)
    binary.BigEndian.PutUint64(buf, in.ID)
    if err := a.b.store.Put(ctx, sessionKey, buf); err != nil {
        return model.Instructor{}, err
    }
    return in, nil
}

func (a authAPI) Logout(ctx context.Context) error {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    return a.b.store.Delete(ctx, sessionKey)
}

// Refresh succeeds while a login session exists.  The local session never
// expires on its own.
func (a authAPI) Refresh(ctx context.Context) error {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    _, err = a.b.current(ctx)
    return err
}

func (a authAPI) Status(ctx context.Context) (model.AuthStatus, error) {
    unlock, err := a.b.begin(ctx)
    if err != nil {
        return model.AuthStatus{}, err
    }
    defer unlock()
    in, err := a.b.current(ctx)
    if api.IsAuth(err) {
        return model.AuthStatus{}, nil
    }
    if err != nil {
        return model.AuthStatus{}, err
    }
    return model.AuthStatus{Authenticated: true, Instructor: &in}, nil
}
