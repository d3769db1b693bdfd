package services

import (
	"bytes"
	"fmt"
	"strings"

	"casepilot/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// CaseExportFilters narrows the case register export. Zero values mean no
// filtering, mirroring the list endpoint.
type CaseExportFilters struct {
	Status   string
	Category string
	Attorney string
	DateFrom string // inclusive, YYYY-MM-DD against created_at
	DateTo   string
}

var caseExportHeader = []string{
	"Ref", "Title", "Category", "Status", "Urgency", "Lead Attorney",
	"Client", "Court", "Filed On", "Hearing Date", "Portfolio Value", "Labels",
}

// ExportCaseRegister builds an xlsx workbook of the case register.
func ExportCaseRegister(db *gorm.DB, filters CaseExportFilters) (*bytes.Buffer, error) {
	query := db.Model(&models.Case{}).Preload("Client").Order("created_at DESC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Attorney != "" {
		query = query.Where("lead_attorney = ?", filters.Attorney)
	}
	if filters.DateFrom != "" {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if filters.DateTo != "" {
		// Add time to make the end date inclusive
		query = query.Where("created_at <= ?", filters.DateTo+" 23:59:59")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cases"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range caseExportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	var cases []models.Case
	row := 2
	const batchSize = 100
	result := query.FindInBatches(&cases, batchSize, func(tx *gorm.DB, batch int) error {
		for _, cs := range cases {
			clientName := ""
			if cs.Client != nil {
				clientName = cs.Client.FullName
			}
			filedOn := ""
			if cs.FiledOn != nil {
				filedOn = cs.FiledOn.Format("2006-01-02")
			}
			hearing := ""
			if cs.HearingDate != nil {
				hearing = cs.HearingDate.Format("2006-01-02")
			}

			values := []interface{}{
				cs.Ref, cs.Title, cs.Category, cs.Status, cs.Urgency,
				cs.LeadAttorney, clientName, cs.Court, filedOn, hearing,
				cs.PortfolioValue, strings.Join(cs.Labels, ", "),
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
		return nil
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to export cases: %w", result.Error)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
