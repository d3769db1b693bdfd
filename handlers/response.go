package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Envelope is the uniform response wrapper. Lists add total/page/pages.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Unread  *int64      `json:"unread,omitempty"`
	Page    *int        `json:"page,omitempty"`
	Pages   *int        `json:"pages,omitempty"`
}

func respondData(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Error: message})
}

func respondList(c echo.Context, data interface{}, total int64, page, limit int) error {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Total:   &total,
		Page:    &page,
		Pages:   &pages,
	})
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c echo.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// sortClause builds a safe ORDER BY from the sortBy/sortOrder query
// parameters using a per-entity column whitelist.
func sortClause(c echo.Context, columns map[string]string, defaultColumn string) string {
	column := defaultColumn
	if mapped, ok := columns[c.QueryParam("sortBy")]; ok {
		column = mapped
	}
	order := "DESC"
	if strings.EqualFold(c.QueryParam("sortOrder"), "asc") {
		order = "ASC"
	}
	return column + " " + order
}

// HTTPErrorHandler maps errors to the response envelope. Unexpected faults
// become a generic 500; the underlying error is only logged server-side.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		code = http.StatusConflict
		message = "Duplicate value"
	default:
		log.Printf("Unhandled error: %v", err)
	}

	if respondErr := respondError(c, code, message); respondErr != nil {
		log.Printf("Failed to write error response: %v", respondErr)
	}
}
