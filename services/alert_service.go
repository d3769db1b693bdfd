package services

import (
	"fmt"
	"log"
	"time"

	"casepilot/models"

	"gorm.io/gorm"
)

// Alert describes an entity change to be recorded in the notification feed.
type Alert struct {
	Entity      string // Case, Client, Document, Task
	Action      string // created, updated, deleted
	Name        string // display name of the affected record
	TriggeredBy string
	EntityID    string
}

var alertLevels = map[string]string{
	models.NotificationActionCreated: models.NotificationLevelSuccess,
	models.NotificationActionUpdated: models.NotificationLevelInfo,
	models.NotificationActionDeleted: models.NotificationLevelAlert,
}

// CreateAlert records a notification for an entity change. Failures are
// logged and swallowed so a feed hiccup never fails the originating request.
func CreateAlert(db *gorm.DB, alert Alert) {
	triggeredBy := alert.TriggeredBy
	if triggeredBy == "" {
		triggeredBy = "System"
	}

	level, ok := alertLevels[alert.Action]
	if !ok {
		level = models.NotificationLevelInfo
	}

	n := models.Notification{
		Level:       level,
		Heading:     fmt.Sprintf("%s %s", alert.Entity, alert.Action),
		Body:        fmt.Sprintf("%s %q was %s by %s.", alert.Entity, alert.Name, alert.Action, triggeredBy),
		Entity:      alert.Entity,
		Action:      alert.Action,
		EntityID:    alert.EntityID,
		TriggeredBy: triggeredBy,
	}

	if err := db.Create(&n).Error; err != nil {
		log.Printf("Notification creation failed: %v", err)
	}
}

// CleanupExpiredNotifications removes notifications older than the retention
// window. Called from the hourly background job.
func CleanupExpiredNotifications(db *gorm.DB) error {
	cutoff := time.Now().Add(-models.NotificationTTL)
	return db.Where("created_at < ?", cutoff).Delete(&models.Notification{}).Error
}
