package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultMiddleware returns the stack every route is served behind:
// request logging, panic recovery, and a body size limit wide enough for
// the wire contract's 15 MB add_batch requirement.
func DefaultMiddleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		loggerMiddleware(),
		middleware.Recover(),
		middleware.BodyLimit(MinBodyLimit),
	}
}

func loggerMiddleware() echo.MiddlewareFunc {
	return middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format:           "[${time_rfc3339}] ${status} ${method} ${uri} ${latency_human}\n",
		CustomTimeFormat: time.RFC3339,
	})
}
