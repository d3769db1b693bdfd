package handlers

import (
	"net/http"
	"strings"
	"time"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/models"
	"casepilot/services"

	"github.com/labstack/echo/v4"
)

var taskSortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"title":        "title",
	"stage":        "stage",
	"urgency":      "urgency",
	"deadline":     "deadline",
	"progress":     "progress",
	"plannedHours": "planned_hours",
	"loggedHours":  "logged_hours",
}

// sameIdentity compares two free-text user names, ignoring case and
// surrounding whitespace.
func sameIdentity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// canTouchTask reports whether the requesting user owns or created the task.
func canTouchTask(c echo.Context, task *models.Task) bool {
	user := middleware.GetUserName(c)
	if user == "" {
		return false
	}
	return sameIdentity(user, task.Owner) || sameIdentity(user, task.CreatedBy)
}

// GetTasksHandler returns a paginated, filtered task list
func GetTasksHandler(c echo.Context) error {
	query := db.DB.Model(&models.Task{})

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR owner LIKE ?", like, like)
	}
	if stage := c.QueryParam("stage"); stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if urgency := c.QueryParam("urgency"); urgency != "" {
		query = query.Where("urgency = ?", urgency)
	}
	if owner := c.QueryParam("owner"); owner != "" {
		query = query.Where("owner = ?", owner)
	}
	if caseID := c.QueryParam("caseId"); caseID != "" {
		query = query.Where("case_id = ?", caseID)
	}
	if deadlineFrom := c.QueryParam("deadlineFrom"); deadlineFrom != "" {
		query = query.Where("deadline >= ?", deadlineFrom)
	}
	if deadlineTo := c.QueryParam("deadlineTo"); deadlineTo != "" {
		query = query.Where("deadline <= ?", deadlineTo+" 23:59:59")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page, limit, offset := parsePagination(c, 10)
	var tasks []models.Task
	err := query.Preload("Case").
		Order(sortClause(c, taskSortColumns, "created_at")).
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return err
	}

	return respondList(c, tasks, total, page, limit)
}

// GetTaskHandler returns a single task by ID
func GetTaskHandler(c echo.Context) error {
	var item models.Task
	if err := db.DB.Preload("Case").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}
	return respondData(c, http.StatusOK, item)
}

// CreateTaskHandler creates a new task. The creator defaults to the
// requesting user so ownership checks keep working later.
func CreateTaskHandler(c echo.Context) error {
	item := new(models.Task)
	if err := c.Bind(item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if item.Title == "" {
		return respondError(c, http.StatusBadRequest, "Task title is required")
	}
	if item.Stage == "" {
		item.Stage = models.TaskStageTodo
	} else if !models.IsValidTaskStage(item.Stage) {
		return respondError(c, http.StatusBadRequest, "Invalid task stage")
	}
	if item.CreatedBy == "" {
		item.CreatedBy = middleware.GetUserName(c)
	}
	item.Details = services.SanitizeRichText(item.Details)

	if item.IsDone() && item.ResolvedAt == nil {
		now := time.Now()
		item.ResolvedAt = &now
	}

	if err := db.DB.Create(item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Task",
		Action:      models.NotificationActionCreated,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusCreated, item)
}

// UpdateTaskHandler updates a task. Only the owner or creator may edit.
func UpdateTaskHandler(c echo.Context) error {
	var item models.Task
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	if !canTouchTask(c, &item) {
		return respondError(c, http.StatusForbidden, "You can only edit your own tasks")
	}

	id, createdAt, createdBy, wasDone := item.ID, item.CreatedAt, item.CreatedBy, item.IsDone()
	if err := c.Bind(&item); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	item.ID, item.CreatedAt, item.CreatedBy = id, createdAt, createdBy

	if !models.IsValidTaskStage(item.Stage) {
		return respondError(c, http.StatusBadRequest, "Invalid task stage")
	}
	item.Details = services.SanitizeRichText(item.Details)

	if item.IsDone() && !wasDone {
		now := time.Now()
		item.ResolvedAt = &now
	} else if !item.IsDone() && wasDone {
		item.ResolvedAt = nil
	}

	if err := db.DB.Save(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Task",
		Action:      models.NotificationActionUpdated,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}

// DeleteTaskHandler deletes a task. Only the owner or creator may delete.
func DeleteTaskHandler(c echo.Context) error {
	var item models.Task
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	if !canTouchTask(c, &item) {
		return respondError(c, http.StatusForbidden, "You can only delete your own tasks")
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return err
	}

	services.CreateAlert(db.DB, services.Alert{
		Entity:      "Task",
		Action:      models.NotificationActionDeleted,
		Name:        item.Title,
		TriggeredBy: middleware.GetUserName(c),
		EntityID:    item.ID,
	})

	return respondData(c, http.StatusOK, item)
}
