package handler // handler defines the HTTP handlers of the dev server

import (
    "context"   // deadlines for backend calls
    "errors"    // errors.As on the api error taxonomy
    "log/slog"  // unexpected failures are logged, not returned
    "net/http"  // status codes
    "strconv"   // path and query ids
    "time"      // request timeout

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/oneday-class/internal/api"        // backend contract and error kinds
    "github.com/iliyamo/oneday-class/internal/middleware" // caller identity
    "github.com/iliyamo/oneday-class/internal/queue"      // reservation events
)

// requestTimeout bounds every backend call made by a handler.
const requestTimeout = 5 * time.Second

// Deps bundles what the resource handlers share.
type Deps struct {
    Backend api.Backend     // the backend served over HTTP
    Events  queue.Publisher // receives reservation and settlement events
}

func (d Deps) events() queue.Publisher {
    if d.Events == nil {
        return queue.Nop{}
    }
    return d.Events
}

// publish sends ev in the background.  A broker failure never fails the
// request that caused the event.
func (d Deps) publish(ev queue.Event) {
    p := d.events()
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := p.Publish(ctx, ev); err != nil {
            slog.Warn("event publish failed", "type", ev.Type, "err", err)
        }
    }()
}

// reqCtx bounds a backend call and carries the authenticated caller, if
// any, so the backend applies its ownership rules to it.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    ctx := c.Request().Context()
    if id, ok := middleware.InstructorID(c); ok {
        ctx = api.WithCaller(ctx, id)
    }
    return context.WithTimeout(ctx, requestTimeout)
}

// pathID parses the uint64 path parameter name.  Zero is passed on so
// the backend answers it the way it answers any unknown id.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil
}

// queryID parses an optional uint64 query parameter; zero means absent.
func queryID(c echo.Context, name string) (uint64, bool) {
    raw := c.QueryParam(name)
    if raw == "" {
        return 0, true
    }
    id, err := strconv.ParseUint(raw, 10, 64)
    return id, err == nil
}

func badID(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

// instructorScope parses the optional instructorId query parameter.
// Zero leaves the choice to the backend, which defaults to the caller.
func instructorScope(c echo.Context) (uint64, error) {
    id, ok := queryID(c, "instructorId")
    if !ok {
        return 0, api.Validation("invalid instructorId")
    }
    return id, nil
}

// fail writes err using the status mapping of the api error kinds.  The
// backend message is passed through verbatim.
func fail(c echo.Context, err error) error {
    if errors.Is(err, context.DeadlineExceeded) {
        return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "backend timeout"})
    }
    var e *api.Error
    if errors.As(err, &e) {
        status := http.StatusInternalServerError
        switch e.Kind {
        case api.KindValidation:
            status = http.StatusBadRequest
        case api.KindConflict:
            status = http.StatusConflict
        case api.KindAuth:
            status = http.StatusUnauthorized
            if e.Status == http.StatusForbidden {
                status = http.StatusForbidden
            }
        case api.KindNotFound:
            status = http.StatusNotFound
        case api.KindNetwork:
            status = http.StatusBadGateway
        }
        if status != http.StatusInternalServerError {
            return c.JSON(status, echo.Map{"error": e.Message})
        }
    }
    slog.Error("handler failed", "method", c.Request().Method, "path", c.Path(), "err", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
