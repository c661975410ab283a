package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/utils"
)

const secret = "test-secret"

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return mr, rdb
}

func serve(e *echo.Echo, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, nil)
    for _, ck := range cookies {
        req.AddCookie(ck)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func accessCookie(t *testing.T, id uint64, role string, ttl time.Duration) *http.Cookie {
    t.Helper()
    tok, err := utils.NewAccessToken(secret, id, role, ttl)
    require.NoError(t, err)
    return &http.Cookie{Name: AccessCookie, Value: tok.Token}
}

func whoami(c echo.Context) error {
    id, _ := InstructorID(c)
    return c.JSON(http.StatusOK, echo.Map{"id": id, "role": Role(c)})
}

func TestJWTAuth(t *testing.T) {
    e := echo.New()
    e.GET("/me", whoami, JWTAuth(secret))

    rec := serve(e, http.MethodGet, "/me")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "login required")

    rec = serve(e, http.MethodGet, "/me", accessCookie(t, 7, model.RoleInstructor, time.Minute))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"id":7,"role":"INSTRUCTOR"}`, rec.Body.String())

    rec = serve(e, http.MethodGet, "/me", accessCookie(t, 7, model.RoleInstructor, -time.Minute))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "session expired")

    rec = serve(e, http.MethodGet, "/me", &http.Cookie{Name: AccessCookie, Value: "garbage"})
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireRole(t *testing.T) {
    e := echo.New()
    e.GET("/admin", whoami, JWTAuth(secret), RequireRole(model.RoleAdmin))

    rec := serve(e, http.MethodGet, "/admin", accessCookie(t, 1, model.RoleInstructor, time.Minute))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = serve(e, http.MethodGet, "/admin", accessCookie(t, 2, model.RoleAdmin, time.Minute))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
}

func TestRateLimitBlocksAfterCapacity(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.RateLimitConfig{
        Enabled:        true,
        Capacity:       2,
        RefillTokens:   1,
        RefillInterval: time.Hour,
        TTL:            time.Hour,
        KeyStrategy:    "ip",
        Prefix:         "test:rl",
    }
    e := echo.New()
    e.Use(RateLimit(cfg, rdb))
    e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

    for i := 0; i < 2; i++ {
        rec := serve(e, http.MethodGet, "/ping")
        require.Equal(t, http.StatusOK, rec.Code)
    }
    rec := serve(e, http.MethodGet, "/ping")
    assert.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
    e := echo.New()
    e.Use(RateLimit(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
    e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
    for i := 0; i < 3; i++ {
        assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/ping").Code)
    }
}

func TestResponseCacheHitAndPurge(t *testing.T) {
    mr, rdb := newRedis(t)
    rc := NewResponseCache(config.CacheConfig{
        Enabled:      true,
        Methods:      map[string]bool{http.MethodGet: true},
        TTL:          time.Minute,
        Prefix:       "test:cache",
        MaxBodyBytes: 1 << 16,
    }, rdb)

    calls := 0
    e := echo.New()
    e.Use(rc.PurgeOnWrite())
    e.GET("/page", func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, echo.Map{"calls": calls})
    }, rc.Cache())
    e.POST("/write", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

    rec := serve(e, http.MethodGet, "/page")
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
    rec = serve(e, http.MethodGet, "/page")
    assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
    assert.JSONEq(t, `{"calls":1}`, rec.Body.String())
    assert.Len(t, mr.Keys(), 1)

    serve(e, http.MethodPost, "/write")
    assert.Empty(t, mr.Keys())
    rec = serve(e, http.MethodGet, "/page")
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)
}

func TestResponseCacheSkipsErrors(t *testing.T) {
    mr, rdb := newRedis(t)
    rc := NewResponseCache(config.CacheConfig{
        Enabled: true,
        Methods: map[string]bool{http.MethodGet: true},
        TTL:     time.Minute,
        Prefix:  "test:cache",
    }, rdb)
    e := echo.New()
    e.GET("/missing", func(c echo.Context) error {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
    }, rc.Cache())

    serve(e, http.MethodGet, "/missing")
    assert.Empty(t, mr.Keys())
}
