package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification levels
const (
	NotificationLevelInfo    = "info"
	NotificationLevelSuccess = "success"
	NotificationLevelWarning = "warning"
	NotificationLevelAlert   = "alert"
)

// Notification actions
const (
	NotificationActionCreated = "created"
	NotificationActionUpdated = "updated"
	NotificationActionDeleted = "deleted"
)

// NotificationTTL is how long a notification is retained before the cleanup
// job removes it.
const NotificationTTL = 30 * 24 * time.Hour

// Notification represents an activity-feed entry
type Notification struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Level   string `gorm:"default:info" json:"level"`
	Heading string `gorm:"not null" json:"heading"`
	Body    string `gorm:"type:text" json:"body"`

	// Related entity context
	Entity   string `json:"entity"`
	Action   string `json:"action"`
	EntityID string `gorm:"type:uuid" json:"entityId"`

	TriggeredBy string `gorm:"default:System" json:"triggeredBy"`

	// User identifiers (emails) that have seen this notification.
	SeenBy []string `gorm:"serializer:json" json:"seenBy"`
}

// BeforeCreate hook to generate UUID
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.TriggeredBy == "" {
		n.TriggeredBy = "System"
	}
	return nil
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}

// SeenByUser reports whether the given user identifier has seen this
// notification.
func (n *Notification) SeenByUser(user string) bool {
	for _, u := range n.SeenBy {
		if u == user {
			return true
		}
	}
	return false
}
