package middleware

import (
    "log/slog"
    "time"

    "github.com/labstack/echo/v4"
)

// RequestLogger writes one structured line per request to logger.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }
            req := c.Request()
            attrs := []any{
                slog.String("method", req.Method),
                slog.String("path", c.Path()),
                slog.Int("status", c.Response().Status),
                slog.Duration("latency", time.Since(start)),
                slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
                slog.String("ip", c.RealIP()),
            }
            if id, ok := InstructorID(c); ok {
                attrs = append(attrs, slog.Uint64("instructor_id", id))
            }
            switch {
            case c.Response().Status >= 500:
                logger.Error("request", attrs...)
            case c.Response().Status >= 400:
                logger.Warn("request", attrs...)
            default:
                logger.Info("request", attrs...)
            }
            return nil
        }
    }
}
