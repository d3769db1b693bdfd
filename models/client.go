package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client tier constants
const (
	ClientTierStandard = "Standard"
	ClientTierPremium  = "Premium"
	ClientTierVIP      = "VIP"
)

// Client standing constants
const (
	ClientStandingActive   = "Active"
	ClientStandingInactive = "Inactive"
)

// ClientTypes lists the valid client types.
var ClientTypes = []string{"Individual", "Corporation", "Government", "Non-Profit"}

// Client represents a client of the firm
type Client struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FullName     string `gorm:"not null" json:"fullName"`
	Email        string `gorm:"not null;uniqueIndex" json:"email"`
	Mobile       string `json:"mobile"`
	Organisation string `json:"organisation"`
	ClientType   string `gorm:"not null;default:Individual" json:"clientType"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Tier         string `gorm:"not null;default:Standard;index" json:"tier"`
	Standing     string `gorm:"default:Active" json:"standing"`

	OpenCases   int   `gorm:"not null;default:0" json:"openCases"`
	ClosedCases int   `gorm:"not null;default:0" json:"closedCases"`
	BilledTotal int64 `gorm:"not null;default:0" json:"billedTotal"`

	InternalNotes string     `gorm:"type:text" json:"internalNotes"`
	OnboardedAt   *time.Time `json:"onboardedAt,omitempty"`
}

// BeforeCreate hook to generate UUID, normalize email and set OnboardedAt
func (cl *Client) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == "" {
		cl.ID = uuid.New().String()
	}
	cl.Email = strings.ToLower(strings.TrimSpace(cl.Email))
	if cl.OnboardedAt == nil {
		now := time.Now()
		cl.OnboardedAt = &now
	}
	return nil
}

// BeforeSave hook to keep email lowercased on updates
func (cl *Client) BeforeSave(tx *gorm.DB) error {
	cl.Email = strings.ToLower(strings.TrimSpace(cl.Email))
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// IsValidClientType checks if the client type is valid
func IsValidClientType(clientType string) bool {
	for _, t := range ClientTypes {
		if t == clientType {
			return true
		}
	}
	return false
}
