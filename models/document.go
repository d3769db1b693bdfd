package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document review status constants
const (
	DocStatusDraft       = "Draft"
	DocStatusSubmitted   = "Submitted"
	DocStatusUnderReview = "Under Review"
	DocStatusApproved    = "Approved"
	DocStatusFiled       = "Filed"
	DocStatusRejected    = "Rejected"
)

// DocTypes lists the valid document types.
var DocTypes = []string{
	"Contract", "Affidavit", "Motion", "Legal Brief", "Evidence",
	"Subpoena", "Court Order", "Settlement", "NDA",
}

// Document represents a legal document attached to a case
type Document struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `gorm:"not null" json:"name"`

	CaseID *string `gorm:"type:uuid;index" json:"caseId,omitempty"`
	Case   *Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	DocType      string `gorm:"not null" json:"docType"`
	ReviewStatus string `gorm:"not null;default:Draft;index" json:"reviewStatus"`

	// Free-text preparer name, same identity convention as Case.LeadAttorney.
	PreparedBy string `gorm:"index" json:"preparedBy"`

	FileURL       string `json:"fileUrl"`
	FileSizeBytes int64  `gorm:"not null;default:0" json:"fileSizeBytes"`
	MimeType      string `json:"mimeType"`

	Revision int        `gorm:"not null;default:1" json:"revision"`
	Remarks  string     `gorm:"type:text" json:"remarks"`
	DueBy    *time.Time `gorm:"index" json:"dueBy,omitempty"`
	Labels   []string   `gorm:"serializer:json" json:"labels"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Revision == 0 {
		d.Revision = 1
	}
	return nil
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocType checks if the document type is valid
func IsValidDocType(docType string) bool {
	for _, t := range DocTypes {
		if t == docType {
			return true
		}
	}
	return false
}
