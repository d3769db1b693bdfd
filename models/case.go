package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants (ordered pipeline)
const (
	CaseStatusPending = "Pending"
	CaseStatusActive  = "Active"
	CaseStatusOnHold  = "On Hold"
	CaseStatusAppeal  = "Appeal"
	CaseStatusClosed  = "Closed"
)

// Urgency constants (shared with tasks)
const (
	UrgencyCritical = "Critical"
	UrgencyHigh     = "High"
	UrgencyStandard = "Standard"
	UrgencyLow      = "Low"
)

// CaseStatusOrder is the pipeline order used by the insights funnel.
var CaseStatusOrder = []string{
	CaseStatusPending,
	CaseStatusActive,
	CaseStatusOnHold,
	CaseStatusAppeal,
	CaseStatusClosed,
}

// CaseCategories lists the valid practice areas.
var CaseCategories = []string{
	"Criminal", "Civil", "Family", "Corporate", "Immigration",
	"Intellectual Property", "Real Estate", "Labor",
}

// Case represents a legal case
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Reference code, e.g. CP-2026-0042. Unique and immutable once assigned.
	Ref string `gorm:"not null;uniqueIndex" json:"ref"`

	Title    string `gorm:"not null" json:"title"`
	Category string `gorm:"not null;index" json:"category"`
	Status   string `gorm:"not null;default:Pending;index" json:"status"`
	Urgency  string `gorm:"not null;default:Standard" json:"urgency"`

	// Client relationship
	ClientID *string `gorm:"type:uuid;index" json:"clientId,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Attorney identity is a denormalized free-text name, grouped by exact
	// string equality elsewhere.
	LeadAttorney      string `gorm:"not null;index" json:"leadAttorney"`
	SupportingCounsel string `json:"supportingCounsel"`

	Court          string     `json:"court"`
	HearingDate    *time.Time `gorm:"index" json:"hearingDate,omitempty"`
	FiledOn        *time.Time `gorm:"index" json:"filedOn,omitempty"`
	PortfolioValue int64      `gorm:"not null;default:0" json:"portfolioValue"`
	Overview       string     `gorm:"type:text" json:"overview"`
	Labels         []string   `gorm:"serializer:json" json:"labels"`
}

// BeforeCreate hook to generate UUID
func (cs *Case) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == "" {
		cs.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsClosed checks if the case is closed
func (cs *Case) IsClosed() bool {
	return cs.Status == CaseStatusClosed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	for _, s := range CaseStatusOrder {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidCaseCategory checks if the category is valid
func IsValidCaseCategory(category string) bool {
	for _, c := range CaseCategories {
		if c == category {
			return true
		}
	}
	return false
}
