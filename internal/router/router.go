package router // package router defines how HTTP routes are registered for the API

import (
    "log/slog"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/config"
    "github.com/iliyamo/oneday-class/internal/handler"
    "github.com/iliyamo/oneday-class/internal/middleware"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/queue"
    "github.com/iliyamo/oneday-class/internal/repository"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// Options carries everything New needs.  Redis, Events and Logger are
// optional.
type Options struct {
    Config    config.Config
    Backend   api.Backend
    Accounts  handler.Accounts
    Tokens    storage.Store // refresh tokens
    Events    queue.Publisher
    Redis     *redis.Client
    RateLimit config.RateLimitConfig
    Cache     config.CacheConfig
    Logger    *slog.Logger
}

// New builds the echo instance of the dev server with every route
// registered.
func New(o Options) *echo.Echo {
    logger := o.Logger
    if logger == nil {
        logger = slog.Default()
    }
    cache := middleware.NewResponseCache(o.Cache, o.Redis)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.RequestID())
    e.Use(middleware.RequestLogger(logger))
    e.Use(middleware.Metrics())
    e.Use(middleware.RateLimit(o.RateLimit, o.Redis))
    e.Use(cache.PurgeOnWrite())

    deps := handler.Deps{Backend: o.Backend, Events: o.Events}
    RegisterRoutes(e)
    RegisterAuth(e, handler.NewAuthHandler(o.Config, o.Accounts, repository.NewTokenRepo(o.Tokens)))
    RegisterPublic(e, handler.NewListingHandler(deps), handler.NewReservationHandler(deps), cache)
    RegisterInstructor(e, deps, o.Config.JWTSecret)
    RegisterAdmin(e, deps, o.Config.JWTSecret)
    return e
}

// RegisterRoutes registers the health check and the Prometheus endpoint.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the cookie session routes.  None of them sit
// behind JWTAuth: refresh must work with an expired access cookie and
// status reports the unauthenticated case itself.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/api/auth")
    g.POST("/login", a.Login)
    g.POST("/logout", a.Logout)
    g.POST("/refresh", a.Refresh)
    g.GET("/status", a.Status)
}

// RegisterPublic registers the booking routes applicants use without an
// account.  The share page is served through the response cache.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, r *handler.ReservationHandler, cache *middleware.ResponseCache) {
    e.GET("/api/classes/shared/:shareCode", l.Shared, cache.Cache())

    e.POST("/api/reservations", r.Create)
    e.GET("/api/reservations/search", r.Search)
    e.GET("/api/reservations/:id", r.Get)
    e.DELETE("/api/reservations/:id", r.Cancel)
}

// RegisterInstructor registers the dashboard routes.  The backend checks
// that the caller owns what it touches; admins pass every check.
func RegisterInstructor(e *echo.Echo, d handler.Deps, jwtSecret string) {
    g := e.Group(
        "/api",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleInstructor, model.RoleAdmin),
    )

    // ---- Classes ----
    l := handler.NewListingHandler(d)
    g.POST("/classes", l.Create)
    g.GET("/classes", l.List)
    g.GET("/classes/:id", l.Get)
    g.PUT("/classes/:id", l.Update)
    g.DELETE("/classes/:id", l.Delete)
    g.PATCH("/classes/:id/share", l.SetShare)
    g.POST("/classes/:id/sessions", l.CreateSession)
    g.GET("/classes/:id/sessions", l.Sessions)

    // ---- Sessions ----
    s := handler.NewSessionHandler(d)
    g.GET("/sessions/:id", s.Get)
    g.DELETE("/sessions/:id", s.Delete)
    g.PATCH("/sessions/:id/status", s.UpdateStatus)
    g.GET("/sessions/:id/reservations", s.Reservations)

    // ---- Members ----
    m := handler.NewMemberHandler(d)
    g.POST("/members", m.Create)
    g.GET("/members", m.List)
    g.PUT("/members/:id", m.Update)
    g.DELETE("/members/:id", m.Delete)

    // ---- Message templates ----
    t := handler.NewTemplateHandler(d)
    g.POST("/message-templates", t.Create)
    g.GET("/message-templates", t.List)
    g.GET("/message-templates/:id", t.Get)
    g.PUT("/message-templates/:id", t.Update)
    g.DELETE("/message-templates/:id", t.Delete)
    g.GET("/message-templates/:id/preview", t.Preview)

    // ---- Settlements ----
    st := handler.NewSettlementHandler(d)
    g.GET("/settlements/instructors/:id", st.ByInstructor)
    g.GET("/settlements/sessions/:id", st.BySession)
    g.POST("/settlements/:id/pay", st.Pay)
}

// RegisterAdmin registers the ADMIN-only routes.
func RegisterAdmin(e *echo.Echo, d handler.Deps, jwtSecret string) {
    g := e.Group(
        "/api",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    a := handler.NewAdminHandler(d)
    g.GET("/admin/instructors", a.Instructors)
}
