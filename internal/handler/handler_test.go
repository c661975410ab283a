package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync"
    "sync/atomic"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/api/mock"
    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/middleware"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/queue"
    "github.com/iliyamo/oneday-class/internal/repository"
    "github.com/iliyamo/oneday-class/internal/storage"
)

func newAuth(t *testing.T) (*echo.Echo, *AuthHandler) {
    t.Helper()
    store := storage.NewMemoryStore()
    b := mock.New(store, mock.WithLatency(0), mock.WithBcryptCost(bcrypt.MinCost))
    _, err := b.SeedInstructor(context.Background(), "kim@example.com", "Kim", "pw", model.RoleInstructor)
    require.NoError(t, err)

    h := NewAuthHandler(config.Config{
        JWTSecret:  "test-secret",
        AccessTTL:  time.Minute,
        RefreshTTL: time.Hour,
    }, b, repository.NewTokenRepo(store))
    e := echo.New()
    e.POST("/api/auth/login", h.Login)
    e.POST("/api/auth/refresh", h.Refresh)
    e.POST("/api/auth/logout", h.Logout)
    e.GET("/api/auth/status", h.Status)
    return e, h
}

func do(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    for _, ck := range cookies {
        req.AddCookie(ck)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
    for _, ck := range rec.Result().Cookies() {
        if ck.Name == name {
            return ck
        }
    }
    return nil
}

func TestLoginSetsHttpOnlyCookies(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"kim@example.com","password":"pw"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.NotContains(t, rec.Body.String(), "passwordHash")

    access := cookie(rec, middleware.AccessCookie)
    refresh := cookie(rec, middleware.RefreshCookie)
    require.NotNil(t, access)
    require.NotNil(t, refresh)
    assert.True(t, access.HttpOnly)
    assert.Equal(t, "/api/auth", refresh.Path)

    rec = do(e, http.MethodGet, "/api/auth/status", "", access)
    assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestLoginRejectsBadInput(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"kim@example.com"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.JSONEq(t, `{"error":"email/password required"}`, rec.Body.String())

    rec = do(e, http.MethodPost, "/api/auth/login", `{"email":"kim@example.com","password":"nope"}`)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}

func TestRefreshRotatesAndDetectsReuse(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"kim@example.com","password":"pw"}`)
    first := cookie(rec, middleware.RefreshCookie)

    rec = do(e, http.MethodPost, "/api/auth/refresh", "", first)
    require.Equal(t, http.StatusNoContent, rec.Code)
    second := cookie(rec, middleware.RefreshCookie)
    require.NotNil(t, second)
    assert.NotEqual(t, first.Value, second.Value)

    // replaying the rotated token ends the whole family
    rec = do(e, http.MethodPost, "/api/auth/refresh", "", first)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    rec = do(e, http.MethodPost, "/api/auth/refresh", "", second)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodPost, "/api/auth/refresh", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesRefresh(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"kim@example.com","password":"pw"}`)
    refresh := cookie(rec, middleware.RefreshCookie)

    rec = do(e, http.MethodPost, "/api/auth/logout", "", refresh)
    require.Equal(t, http.StatusNoContent, rec.Code)
    assert.Less(t, cookie(rec, middleware.AccessCookie).MaxAge, 0)

    rec = do(e, http.MethodPost, "/api/auth/refresh", "", refresh)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatusWithoutCookie(t *testing.T) {
    e, _ := newAuth(t)
    rec := do(e, http.MethodGet, "/api/auth/status", "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

func TestFailMapsKinds(t *testing.T) {
    cases := []struct {
        err  error
        code int
        body string
    }{
        {api.Validation("session is full"), http.StatusBadRequest, "session is full"},
        {api.Conflict("cannot delete session with reservations"), http.StatusConflict, "cannot delete session with reservations"},
        {api.Unauthenticated("login required"), http.StatusUnauthorized, "login required"},
        {api.NotFound("class not found"), http.StatusNotFound, "class not found"},
        {api.Network(errors.New("dial")), http.StatusBadGateway, api.NetworkMessage},
        {api.Forbidden(), http.StatusForbidden, api.ForbiddenMessage},
        {context.DeadlineExceeded, http.StatusGatewayTimeout, "backend timeout"},
        {errors.New("boom"), http.StatusInternalServerError, "internal error"},
    }
    e := echo.New()
    for _, tc := range cases {
        rec := httptest.NewRecorder()
        c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
        require.NoError(t, fail(c, tc.err))
        assert.Equal(t, tc.code, rec.Code, tc.body)
        assert.Contains(t, rec.Body.String(), tc.body)
    }
}

type cancelCounter struct{ cancelled atomic.Int32 }

func (p *cancelCounter) Publish(_ context.Context, ev queue.Event) error {
    if ev.Type == queue.ReservationCancelled {
        p.cancelled.Add(1)
    }
    return nil
}

func TestConcurrentCancelPublishesOnce(t *testing.T) {
    b := mock.New(storage.NewMemoryStore(), mock.WithLatency(0), mock.WithBcryptCost(bcrypt.MinCost))
    kim, err := b.SeedInstructor(context.Background(), "kim@example.com", "Kim", "pw", model.RoleInstructor)
    require.NoError(t, err)
    ctx := api.WithCaller(context.Background(), kim.ID)
    l, err := b.Listings().Create(ctx, model.ListingInput{Name: "Pottery", Location: "Seoul"})
    require.NoError(t, err)
    s, err := b.Sessions().Create(ctx, l.ID, model.SessionInput{
        Date: "2026-11-02", StartTime: "10:00", EndTime: "12:00", Capacity: 4, Price: 30000,
    })
    require.NoError(t, err)
    id, err := b.Reservations().Create(ctx, s.ID, model.ReservationInput{ApplicantName: "Lee", PhoneNumber: "01012345678"})
    require.NoError(t, err)

    events := &cancelCounter{}
    e := echo.New()
    e.DELETE("/api/reservations/:id", NewReservationHandler(Deps{Backend: b, Events: events}).Cancel)

    var wg sync.WaitGroup
    for i := 0; i < 8; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            rec := do(e, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), "")
            assert.Equal(t, http.StatusNoContent, rec.Code)
        }()
    }
    wg.Wait()

    require.Eventually(t, func() bool { return events.cancelled.Load() == 1 }, time.Second, 10*time.Millisecond)
    assert.Never(t, func() bool { return events.cancelled.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}
