package handlers

import (
	"net/http"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

// GetStatsHandler returns the unfiltered dashboard snapshot. The "my work"
// slice is scoped to the X-User-Name header, falling back to the lead
// attorney of the first stored case.
func GetStatsHandler(c echo.Context) error {
	service := services.NewStatsService(db.DB)

	data, err := service.Snapshot(middleware.GetUserName(c))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, data)
}

// GetInsightsHandler returns the deep-dive analytics report. All query
// parameters are optional; an unrecognized range token falls back to 12m.
func GetInsightsHandler(c echo.Context) error {
	service := services.NewInsightsService(db.DB)

	params := services.InsightsParams{
		Range:    c.QueryParam("range"),
		Attorney: c.QueryParam("attorney"),
		Category: c.QueryParam("category"),
	}
	if params.Range == "" {
		params.Range = "12m"
	}

	data, err := service.Compute(params)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, data)
}
