package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PingHandler is a liveness probe
func PingHandler(c echo.Context) error {
	return respondData(c, http.StatusOK, map[string]string{"status": "ok"})
}
