package services

import (
	"fmt"
	"time"

	"casepilot/models"

	"gorm.io/gorm"
)

// GenerateCaseRef generates a reference code for a new case.
// Format: CP-{YEAR}-{SEQUENCE}, sequence following the highest ref already
// issued this year. Example: CP-2026-0042
func GenerateCaseRef(db *gorm.DB) (string, error) {
	year := time.Now().Year()

	var maxCase models.Case
	err := db.Where("ref LIKE ?", fmt.Sprintf("CP-%d-%%", year)).
		Order("ref DESC").
		First(&maxCase).Error

	sequence := 1
	if err == nil {
		var parsedSeq int
		if _, scanErr := fmt.Sscanf(maxCase.Ref, fmt.Sprintf("CP-%d-%%d", year), &parsedSeq); scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max case ref: %w", err)
	}

	return fmt.Sprintf("CP-%d-%04d", year, sequence), nil
}

// EnsureUniqueCaseRef generates a case ref and verifies no case holds it,
// retrying to cover concurrent creations.
func EnsureUniqueCaseRef(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		ref, err := GenerateCaseRef(db)
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Case{}).Where("ref = ?", ref).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check ref uniqueness: %w", err)
		}
		if count == 0 {
			return ref, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique case ref after %d retries", maxRetries)
}
