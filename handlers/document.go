package handlers

import (
	"net/http"
	"path"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/models"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

var documentSortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"name":         "name",
	"docType":      "doc_type",
	"reviewStatus": "review_status",
	"dueBy":        "due_by",
	"revision":     "revision",
}

// GetDocumentsHandler returns a paginated, filtered document list
func GetDocumentsHandler(c echo.Context) error {
	query := db.DB.Model(&models.Document{})

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR prepared_by LIKE ?", like, like)
	}
	if reviewStatus := c.QueryParam("reviewStatus"); reviewStatus != "" {
		query = query.Where("review_status = ?", reviewStatus)
	}
	if docType := c.QueryParam("docType"); docType != "" {
		query = query.Where("doc_type = ?", docType)
	}
	if caseID := c.QueryParam("caseId"); caseID != "" {
		query = query.Where("case_id = ?", caseID)
	}
	if preparedBy := c.QueryParam("preparedBy"); preparedBy != "" {
		query = query.Where("prepared_by = ?", preparedBy)
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
	var documents []models.Document
	err := query.Preload("Case").
		Order(sortClause(c, documentSortColumns, "created_at")).
		Offset(offset).
		Limit(limit).
		Find(&documents).Error
	if err != nil {
		return err
	}

	return respondList(c, documents, total, page, limit)
}

// GetDocumentHandler returns a single document by ID
func GetDocumentHandler(c echo.Context) error {
	var item models.Document
	if err := db.DB.Preload("Case").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Document not found")
	}
	return respondData(c, http.StatusOK, item)
}

// CreateDocumentHandler creates a new document record
func CreateDocumentHandler(c echo.Context) error {
	item := new(models.Document)
	if err := c.Bind(item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if item.Name == "" {
		return respondError(c, http.StatusBadRequest, "Document name is required")
	}
	if !models.IsValidDocType(item.DocType) {
		return respondError(c, http.StatusBadRequest, "Invalid document type")
	}
	if item.ReviewStatus == "" {
		item.ReviewStatus = models.DocStatusDraft
	}
	item.Remarks = services.SanitizeRichText(item.Remarks)

	if err := db.DB.Create(item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Document",
		Action:      models.NotificationActionCreated,
		Name:        item.Name,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusCreated, item)
}

// UpdateDocumentHandler updates a document. The revision counter bumps when
// the stored file changes.
func UpdateDocumentHandler(c echo.Context) error {
	var item models.Document
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Document not found")
	}

	id, createdAt, previousURL := item.ID, item.CreatedAt, item.FileURL
	if err := c.Bind(&item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	item.ID, item.CreatedAt = id, createdAt

	if !models.IsValidDocType(item.DocType) {
		return respondError(c, http.StatusBadRequest, "Invalid document type")
	}
	replaced := item.FileURL != "" && item.FileURL != previousURL
	if replaced {
		item.Revision++
	}
	item.Remarks = services.SanitizeRichText(item.Remarks)

	if err := db.DB.Save(&item).Error; err != nil {
		return err
	}

	if replaced {
		removeStoredFile(c, previousURL)
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Document",
		Action:      models.NotificationActionUpdated,
		Name:        item.Name,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}

// removeStoredFile deletes the stored object behind a document's file URL.
// Storage keys are flat, so the last path segment is the key. Failures are
// logged but never fail the request; the record change already happened.
func removeStoredFile(c echo.Context, fileURL string) {
	if fileURL == "" || services.Storage == nil {
		return
	}
	key := path.Base(fileURL)
	if key == "" || key == "." || key == "/" {
		return
	}
	if err := services.Storage.Delete(c.Request().Context(), key); err != nil {
		c.Logger().Warnf("Failed to delete stored file %s: %v", key, err)
	}
}

// DeleteDocumentHandler hard-deletes a document record
func DeleteDocumentHandler(c echo.Context) error {
	var item models.Document
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Document not found")
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return err
	}
	removeStoredFile(c, item.FileURL)

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Document",
		Action:      models.NotificationActionDeleted,
		Name:        item.Name,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}
