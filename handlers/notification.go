package handlers

import (
	"net/http"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// unseenByUser scopes a notification query to rows the given user has not
// seen. seen_by is a JSON array of emails, so the quoted LIKE pattern is
// unambiguous.
func unseenByUser(query *gorm.DB, userEmail string) *gorm.DB {
	return query.Where("seen_by IS NULL OR seen_by = '' OR seen_by NOT LIKE ?", `%"`+userEmail+`"%`)
}

// GetNotificationsHandler returns the activity feed, newest first, with an
// unread counter scoped to the X-User-Email header.
func GetNotificationsHandler(c echo.Context) error {
	query := db.DB.Model(&models.Notification{})

	if level := c.QueryParam("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if entity := c.QueryParam("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	_, limit, offset := parsePagination(c, 20)
	items := []models.Notification{}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return err
	}

	unread := total
	if userEmail := middleware.GetUserEmail(c); userEmail != "" {
		if err := unseenByUser(db.DB.Model(&models.Notification{}), userEmail).
			Count(&unread).Error; err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Total:   &total,
		Unread:  &unread,
	})
}

// MarkNotificationReadHandler records that the requesting user has seen one
// notification. Idempotent.
func MarkNotificationReadHandler(c echo.Context) error {
	userEmail := middleware.GetUserEmail(c)
	if userEmail == "" {
		return respondError(c, http.StatusBadRequest, "X-User-Email header is required")
	}

	var item models.Notification
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		return respondError(c, http.StatusNotFound, "Notification not found")
	}

	if !item.SeenByUser(userEmail) {
		item.SeenBy = append(item.SeenBy, userEmail)
		if err := db.DB.Save(&item).Error; err != nil {
			return err
		}
	}

	return respondData(c, http.StatusOK, item)
}

// MarkAllNotificationsReadHandler marks every unseen notification as seen by
// the requesting user.
func MarkAllNotificationsReadHandler(c echo.Context) error {
	userEmail := middleware.GetUserEmail(c)
	if userEmail == "" {
		return respondError(c, http.StatusBadRequest, "X-User-Email header is required")
	}

	var items []models.Notification
	if err := unseenByUser(db.DB.Model(&models.Notification{}), userEmail).Find(&items).Error; err != nil {
		return err
	}

	for i := range items {
		if items[i].SeenByUser(userEmail) {
			continue
		}
		items[i].SeenBy = append(items[i].SeenBy, userEmail)
		if err := db.DB.Save(&items[i]).Error; err != nil {
			return err
		}
	}

	return respondMessage(c, "All notifications marked as read")
}

// ClearNotificationsHandler deletes the entire feed
func ClearNotificationsHandler(c echo.Context) error {
	if err := db.DB.Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	return respondMessage(c, "All notifications cleared")
}
