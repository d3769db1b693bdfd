package handlers

import (
	"fmt"
	"net/http"
	"time"

	"casepilot/db"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

// ExportCasesHandler streams the filtered case register as an xlsx download
func ExportCasesHandler(c echo.Context) error {
	filters := services.CaseExportFilters{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Attorney: c.QueryParam("attorney"),
		DateFrom: c.QueryParam("dateFrom"),
		DateTo:   c.QueryParam("dateTo"),
	}

	buf, err := services.ExportCaseRegister(db.DB, filters)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("case-register-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
