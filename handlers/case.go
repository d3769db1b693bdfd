package handlers

import (
	"net/http"
	"time"

	"casepilot/config"
	"casepilot/db"
	"casepilot/middleware"
	"casepilot/models"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

var caseSortColumns = map[string]string{
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
	"ref":            "ref",
	"title":          "title",
	"status":         "status",
	"urgency":        "urgency",
	"filedOn":        "filed_on",
	"hearingDate":    "hearing_date",
	"portfolioValue": "portfolio_value",
}

// GetCasesHandler returns a paginated, filtered case list
func GetCasesHandler(c echo.Context) error {
	query := db.DB.Model(&models.Case{})

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR ref LIKE ? OR lead_attorney LIKE ?", like, like, like)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if urgency := c.QueryParam("urgency"); urgency != "" {
		query = query.Where("urgency = ?", urgency)
	}
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if caseID := c.QueryParam("caseId"); caseID != "" {
		query = query.Where("id = ?", caseID)
	}
	if dateFrom := c.QueryParam("dateFrom"); dateFrom != "" {
		query = query.Where("created_at >= ?", dateFrom)
	}
	if dateTo := c.QueryParam("dateTo"); dateTo != "" {
		query = query.Where("created_at <= ?", dateTo+" 23:59:59")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page, limit, offset := parsePagination(c, 10)
	var cases []models.Case
	err := query.Preload("Client").
		Order(sortClause(c, caseSortColumns, "created_at")).
		Offset(offset).
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return err
	}

	return respondList(c, cases, total, page, limit)
}

// GetCaseHandler returns a single case by ID
func GetCaseHandler(c echo.Context) error {
	var item models.Case
	if err := db.DB.Preload("Client").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Case not found")
	}
	return respondData(c, http.StatusOK, item)
}

// CreateCaseHandler creates a new case, assigning a reference code when none
// was supplied. The client on record gets a courtesy email.
func CreateCaseHandler(c echo.Context) error {
	item := new(models.Case)
	if err := c.Bind(item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if item.Title == "" {
		return respondError(c, http.StatusBadRequest, "Case title is required")
	}
	if item.LeadAttorney == "" {
		return respondError(c, http.StatusBadRequest, "Lead attorney is required")
	}
	if !models.IsValidCaseCategory(item.Category) {
		return respondError(c, http.StatusBadRequest, "Invalid case category")
	}
	if item.Status == "" {
		item.Status = models.CaseStatusPending
	} else if !models.IsValidCaseStatus(item.Status) {
		return respondError(c, http.StatusBadRequest, "Invalid case status")
	}

	if item.Ref == "" {
		ref, err := services.EnsureUniqueCaseRef(db.DB)
		if err != nil {
			return err
		}
		item.Ref = ref
	}
	item.Overview = services.SanitizeRichText(item.Overview)

	if err := db.DB.Create(item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Case",
		Action:      models.NotificationActionCreated,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	if item.ClientID != nil {
		var client models.Client
		if err := db.DB.First(&client, "id = ?", *item.ClientID).Error; err == nil {
			cfg := config.Load()
			email := services.BuildCaseOpenedEmail(client.Email, client.FullName, item.Ref, item.Title)
			services.SendEmailAsync(cfg, email)
		}
	}

	return respondData(c, http.StatusCreated, item)
}

// UpdateCaseHandler updates a case in place. The reference code is immutable.
func UpdateCaseHandler(c echo.Context) error {
	var item models.Case
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Case not found")
	}

	id, ref, createdAt := item.ID, item.Ref, item.CreatedAt
	previousHearing := item.HearingDate
	if err := c.Bind(&item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	item.ID, item.Ref, item.CreatedAt = id, ref, createdAt

	if !models.IsValidCaseStatus(item.Status) {
		return respondError(c, http.StatusBadRequest, "Invalid case status")
	}
	if !models.IsValidCaseCategory(item.Category) {
		return respondError(c, http.StatusBadRequest, "Invalid case category")
	}
	item.Overview = services.SanitizeRichText(item.Overview)

	if err := db.DB.Save(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Case",
		Action:      models.NotificationActionUpdated,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	if hearingChanged(previousHearing, item.HearingDate) && item.ClientID != nil {
		var client models.Client
		if err := db.DB.First(&client, "id = ?", *item.ClientID).Error; err == nil {
			cfg := config.Load()
			email := services.BuildHearingScheduledEmail(client.Email, client.FullName, item.Ref, item.Court, *item.HearingDate)
			services.SendEmailAsync(cfg, email)
		}
	}

	return respondData(c, http.StatusOK, item)
}

func hearingChanged(before, after *time.Time) bool {
	if after == nil {
		return false
	}
	return before == nil || !before.Equal(*after)
}

// DeleteCaseHandler hard-deletes a case
func DeleteCaseHandler(c echo.Context) error {
	var item models.Case
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Case not found")
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Case",
		Action:      models.NotificationActionDeleted,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}
