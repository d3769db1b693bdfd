package services

import (
	"fmt"
	"testing"
	"time"

	"casepilot/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCaseRefTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Case{}))
	return db
}

func TestGenerateCaseRef(t *testing.T) {
	db := setupCaseRefTestDB(t)
	year := time.Now().Year()

	ref, err := GenerateCaseRef(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CP-%d-0001", year), ref)

	db.Create(&models.Case{Ref: ref, Title: "First", Category: "Civil", LeadAttorney: "A. Mehta"})

	ref2, err := GenerateCaseRef(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CP-%d-0002", year), ref2)
}

func TestGenerateCaseRef_FollowsHighestSequence(t *testing.T) {
	db := setupCaseRefTestDB(t)
	year := time.Now().Year()

	// Gaps from deleted cases do not reuse earlier sequences.
	db.Create(&models.Case{Ref: fmt.Sprintf("CP-%d-0007", year), Title: "Survivor", Category: "Civil", LeadAttorney: "A. Mehta"})

	ref, err := GenerateCaseRef(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CP-%d-0008", year), ref)
}

func TestEnsureUniqueCaseRef(t *testing.T) {
	db := setupCaseRefTestDB(t)
	year := time.Now().Year()

	db.Create(&models.Case{Ref: fmt.Sprintf("CP-%d-0002", year), Title: "Renumbered", Category: "Civil", LeadAttorney: "A. Mehta"})

	ref, err := EnsureUniqueCaseRef(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CP-%d-0003", year), ref)
}
