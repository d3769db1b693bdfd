package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"casepilot/db"
	"casepilot/models"

	"github.com/labstack/echo/v4"
)

const searchResultsPerType = 6

// SearchResults groups global search hits per entity type
type SearchResults struct {
	Cases     []models.Case     `json:"cases"`
	Clients   []models.Client   `json:"clients"`
	Documents []models.Document `json:"documents"`
	Tasks     []models.Task     `json:"tasks"`
}

// GlobalSearchHandler searches cases, clients, documents and tasks with one
// query string. Terms shorter than two characters are rejected to keep the
// LIKE scans cheap.
func GlobalSearchHandler(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if utf8.RuneCountInString(q) < 2 {
		return respondError(c, http.StatusBadRequest, "Search query must be at least 2 characters")
	}
	like := "%" + q + "%"

	results := SearchResults{
		Cases:     []models.Case{},
		Clients:   []models.Client{},
		Documents: []models.Document{},
		Tasks:     []models.Task{},
	}

	err := db.DB.
		Where("title LIKE ? OR ref LIKE ? OR lead_attorney LIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(searchResultsPerType).
		Find(&results.Cases).Error
	if err != nil {
		return err
	}

	err = db.DB.
		Where("full_name LIKE ? OR email LIKE ? OR organisation LIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(searchResultsPerType).
		Find(&results.Clients).Error
	if err != nil {
		return err
	}

	err = db.DB.
		Where("name LIKE ? OR prepared_by LIKE ?", like, like).
		Order("created_at DESC").
		Limit(searchResultsPerType).
		Find(&results.Documents).Error
	if err != nil {
		return err
	}

	err = db.DB.
		Where("title LIKE ? OR owner LIKE ?", like, like).
		Order("created_at DESC").
		Limit(searchResultsPerType).
		Find(&results.Tasks).Error
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, results)
}
