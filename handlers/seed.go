package handlers

import (
	"net/http"

	"casepilot/db"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

// SeedHandler wipes the database and loads the demo dataset
func SeedHandler(c echo.Context) error {
	result, err := services.Seed(db.DB)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, result)
}
