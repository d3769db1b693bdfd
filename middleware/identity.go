package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Header names carrying the caller's identity. There is no real
// authentication; the dashboard supplies these from its local credential
// store and the API trusts them.
const (
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
)

// Context keys set by Identity
const (
	ContextUserName  = "userName"
	ContextUserEmail = "userEmail"
)

// Identity extracts the caller's display name and email from request headers
// and stores them on the echo context.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextUserName, strings.TrimSpace(c.Request().Header.Get(HeaderUserName)))
			c.Set(ContextUserEmail, strings.TrimSpace(c.Request().Header.Get(HeaderUserEmail)))
			return next(c)
		}
	}
}

// GetUserName returns the caller's display name, or "" when the header was
// absent.
func GetUserName(c echo.Context) string {
	if name, ok := c.Get(ContextUserName).(string); ok {
		return name
	}
	return ""
}

// GetUserEmail returns the caller's email identifier, or "" when the header
// was absent.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(ContextUserEmail).(string); ok {
		return email
	}
	return ""
}
