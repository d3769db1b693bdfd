package handlers

import (
	"net/http"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/models"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

var clientSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"fullName":    "full_name",
	"tier":        "tier",
	"billedTotal": "billed_total",
	"openCases":   "open_cases",
	"onboardedAt": "onboarded_at",
}

// GetClientsHandler returns a paginated, filtered client list
func GetClientsHandler(c echo.Context) error {
	query := db.DB.Model(&models.Client{})

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ? OR organisation LIKE ?", like, like, like)
	}
	if tier := c.QueryParam("tier"); tier != "" {
		query = query.Where("tier = ?", tier)
	}
	if standing := c.QueryParam("standing"); standing != "" {
		query = query.Where("standing = ?", standing)
	}
	if clientType := c.QueryParam("clientType"); clientType != "" {
		query = query.Where("client_type = ?", clientType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page, limit, offset := parsePagination(c, 10)
	var clients []models.Client
	err := query.Order(sortClause(c, clientSortColumns, "created_at")).
		Offset(offset).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return err
	}

	return respondList(c, clients, total, page, limit)
}

// GetClientHandler returns a single client by ID
func GetClientHandler(c echo.Context) error {
	var item models.Client
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Client not found")
	}
	return respondData(c, http.StatusOK, item)
}

// CreateClientHandler creates a new client
func CreateClientHandler(c echo.Context) error {
	item := new(models.Client)
	if err := c.Bind(item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if item.FullName == "" {
		return respondError(c, http.StatusBadRequest, "Client name is required")
	}
	if item.Email == "" {
		return respondError(c, http.StatusBadRequest, "Client email is required")
	}
	if item.ClientType == "" {
		item.ClientType = "Individual"
	} else if !models.IsValidClientType(item.ClientType) {
		return respondError(c, http.StatusBadRequest, "Invalid client type")
	}
	item.InternalNotes = services.SanitizeRichText(item.InternalNotes)

	if err := db.DB.Create(item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Client",
		Action:      models.NotificationActionCreated,
		Name:        item.FullName,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusCreated, item)
}

// UpdateClientHandler updates a client in place
func UpdateClientHandler(c echo.Context) error {
	var item models.Client
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Client not found")
	}

	id, createdAt := item.ID, item.CreatedAt
	if err := c.Bind(&item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	item.ID, item.CreatedAt = id, createdAt

	if !models.IsValidClientType(item.ClientType) {
		return respondError(c, http.StatusBadRequest, "Invalid client type")
	}
	item.InternalNotes = services.SanitizeRichText(item.InternalNotes)

	if err := db.DB.Save(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Client",
		Action:      models.NotificationActionUpdated,
		Name:        item.FullName,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}

// DeleteClientHandler hard-deletes a client. Cases keep their clientId but
// the association will no longer resolve.
func DeleteClientHandler(c echo.Context) error {
	var item models.Client
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Client not found")
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Client",
		Action:      models.NotificationActionDeleted,
		Name:        item.FullName,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}
