package api

import "context"

type callerKey struct{}

// WithCaller marks ctx as acting for instructor id.  The dev server sets
// it from the access token so that a local backend applies its ownership
// rules to the HTTP caller instead of its own login session.
func WithCaller(ctx context.Context, id uint64) context.Context {
    return context.WithValue(ctx, callerKey{}, id)
}

// CallerFrom returns the instructor id set by WithCaller.
func CallerFrom(ctx context.Context) (uint64, bool) {
    id, ok := ctx.Value(callerKey{}).(uint64)
    return id, ok && id != 0
}
