package services

import (
	"testing"
	"time"

	"casepilot/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.Case{}, &models.Client{}, &models.Document{}, &models.Task{}, &models.Notification{})
	assert.NoError(t, err)
	return db
}

func TestSnapshot_EmptyDatabase(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	data, err := service.Snapshot("")
	assert.NoError(t, err)

	assert.Equal(t, int64(0), data.Counts.TotalCases)
	assert.Equal(t, 0, data.Aggregated.AvgProgress)
	assert.Equal(t, int64(0), data.Aggregated.TotalPortfolioValue)

	// Everything serializes as [], never null
	assert.NotNil(t, data.Charts.CasesByCategory)
	assert.NotNil(t, data.Charts.CasesByMonth)
	assert.NotNil(t, data.Lists.RecentCases)
	assert.NotNil(t, data.MyWork.WeekDeadlines)
}

func TestSnapshot_Counts(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	db.Create(&models.Case{Ref: "CP-1", Title: "Active", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta", PortfolioValue: 1000})
	db.Create(&models.Case{Ref: "CP-2", Title: "Closed", Category: "Civil", Status: models.CaseStatusClosed, LeadAttorney: "A. Mehta", PortfolioValue: 2500})
	db.Create(&models.Case{Ref: "CP-3", Title: "Pending", Category: "Family", Status: models.CaseStatusPending, LeadAttorney: "E. Vasquez"})

	db.Create(&models.Client{FullName: "Acme Corp", Email: "legal@acme.test", Tier: models.ClientTierVIP})
	db.Create(&models.Client{FullName: "Jane Roe", Email: "jane@roe.test", Tier: models.ClientTierStandard})

	overdue := time.Now().AddDate(0, 0, -3)
	db.Create(&models.Document{Name: "Filed brief", DocType: "Legal Brief", ReviewStatus: models.DocStatusFiled})
	db.Create(&models.Document{Name: "Overdue draft", DocType: "Motion", ReviewStatus: models.DocStatusDraft, DueBy: &overdue})
	// Overdue but already approved, so not counted
	db.Create(&models.Document{Name: "Approved late", DocType: "Motion", ReviewStatus: models.DocStatusApproved, DueBy: &overdue})

	db.Create(&models.Task{Title: "Done", Owner: "A. Mehta", Stage: models.TaskStageDone, Progress: 100})
	db.Create(&models.Task{Title: "Overdue", Owner: "A. Mehta", Stage: models.TaskStageInProgress, Deadline: &overdue, Progress: 50})
	db.Create(&models.Task{Title: "Dropped late", Owner: "A. Mehta", Stage: models.TaskStageDropped, Deadline: &overdue})

	data, err := service.Snapshot("A. Mehta")
	assert.NoError(t, err)

	assert.Equal(t, int64(3), data.Counts.TotalCases)
	assert.Equal(t, int64(1), data.Counts.ActiveCases)
	assert.Equal(t, int64(1), data.Counts.ClosedCases)
	assert.Equal(t, int64(1), data.Counts.PendingCases)
	assert.Equal(t, int64(2), data.Counts.TotalClients)
	assert.Equal(t, int64(1), data.Counts.PremiumClients)
	assert.Equal(t, int64(3), data.Counts.TotalDocs)
	assert.Equal(t, int64(1), data.Counts.FiledDocs)
	assert.Equal(t, int64(1), data.Counts.OverdueDocs)
	assert.Equal(t, int64(3), data.Counts.TotalTasks)
	assert.Equal(t, int64(1), data.Counts.DoneTasks)
	assert.Equal(t, int64(1), data.Counts.OverdueTasks)

	assert.Equal(t, int64(3500), data.Aggregated.TotalPortfolioValue)
	// (100 + 50 + 0) / 3
	assert.Equal(t, 50, data.Aggregated.AvgProgress)
}

func TestSnapshot_Charts(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	recent := time.Now().AddDate(0, 0, -10)
	db.Create(&models.Case{Ref: "CP-1", Title: "One", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta", FiledOn: &recent, PortfolioValue: 100})
	db.Create(&models.Case{Ref: "CP-2", Title: "Two", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta", FiledOn: &recent, PortfolioValue: 200})
	db.Create(&models.Case{Ref: "CP-3", Title: "Three", Category: "Family", Status: models.CaseStatusPending, LeadAttorney: "E. Vasquez", FiledOn: &recent})

	data, err := service.Snapshot("A. Mehta")
	assert.NoError(t, err)

	// Category chart sorted by count descending
	assert.Equal(t, []NameValue{
		{Name: "Civil", Value: 2},
		{Name: "Family", Value: 1},
	}, data.Charts.CasesByCategory)

	assert.Len(t, data.Charts.CasesByMonth, 1)
	assert.Equal(t, recent.Format("2006-01"), data.Charts.CasesByMonth[0].Month)
	assert.Equal(t, 3, data.Charts.CasesByMonth[0].Count)

	assert.Equal(t, "A. Mehta", data.Charts.AttorneyWorkload[0].Name)
	assert.Equal(t, 2, data.Charts.AttorneyWorkload[0].Cases)
	assert.Equal(t, int64(300), data.Charts.AttorneyWorkload[0].Value)
}

func TestSnapshot_FallbackIdentity(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	first := time.Now().AddDate(0, 0, -2)
	db.Create(&models.Case{Ref: "CP-1", Title: "First", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "E. Vasquez", CreatedAt: first})
	db.Create(&models.Case{Ref: "CP-2", Title: "Second", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta"})
	db.Create(&models.Task{Title: "Hers", Owner: "E. Vasquez", Stage: models.TaskStageTodo})

	// No identity header: the oldest case's lead attorney stands in
	data, err := service.Snapshot("")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), data.MyWork.MyCases)
	assert.Equal(t, int64(1), data.MyWork.MyTasks)
}

func TestSnapshot_MyWork(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	hearingSoon := time.Now().AddDate(0, 0, 3)
	hearingFar := time.Now().AddDate(0, 0, 60)
	db.Create(&models.Case{Ref: "CP-1", Title: "Mine active", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta", HearingDate: &hearingSoon})
	db.Create(&models.Case{Ref: "CP-2", Title: "Mine closed", Category: "Civil", Status: models.CaseStatusClosed, LeadAttorney: "A. Mehta"})
	db.Create(&models.Case{Ref: "CP-3", Title: "Far hearing", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "A. Mehta", HearingDate: &hearingFar})
	db.Create(&models.Case{Ref: "CP-4", Title: "Not mine", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "E. Vasquez"})

	deadline := time.Now().AddDate(0, 0, 2)
	db.Create(&models.Task{Title: "Open soon", Owner: "A. Mehta", Stage: models.TaskStageTodo, Deadline: &deadline, PlannedHours: 8, LoggedHours: 3})
	db.Create(&models.Task{Title: "Done", Owner: "A. Mehta", Stage: models.TaskStageDone, Deadline: &deadline, PlannedHours: 2, LoggedHours: 4})

	dueSoon := time.Now().AddDate(0, 0, 5)
	db.Create(&models.Document{Name: "Pending doc", DocType: "Motion", ReviewStatus: models.DocStatusDraft, PreparedBy: "A. Mehta", DueBy: &dueSoon})
	db.Create(&models.Document{Name: "Filed doc", DocType: "Motion", ReviewStatus: models.DocStatusFiled, PreparedBy: "A. Mehta", DueBy: &dueSoon})

	data, err := service.Snapshot("A. Mehta")
	assert.NoError(t, err)

	my := data.MyWork
	assert.Equal(t, int64(3), my.MyCases)
	assert.Equal(t, int64(2), my.MyActiveCases)
	assert.Equal(t, int64(2), my.MyTasks)
	assert.Equal(t, int64(1), my.MyOpenTasks)
	assert.Equal(t, int64(2), my.MyDocs)
	assert.Equal(t, 10.0, my.MyBillable.Planned)
	assert.Equal(t, 7.0, my.MyBillable.Logged)

	// Only the hearing within 30 days
	assert.Len(t, my.MyHearings, 1)
	assert.Equal(t, "CP-1", my.MyHearings[0].Ref)

	// Week timeline: open task, hearing and pending doc, sorted by date.
	// The done task and the filed doc stay out.
	assert.Len(t, my.WeekDeadlines, 3)
	assert.Equal(t, "task", my.WeekDeadlines[0].Type)
	assert.Equal(t, "hearing", my.WeekDeadlines[1].Type)
	assert.Equal(t, "document", my.WeekDeadlines[2].Type)
}

func TestSnapshot_Lists(t *testing.T) {
	db := setupStatsTestDB(t)
	service := NewStatsService(db)

	for i := 0; i < 7; i++ {
		db.Create(&models.Case{
			Ref:          "CP-" + string(rune('A'+i)),
			Title:        "Case",
			Category:     "Civil",
			Status:       models.CaseStatusActive,
			LeadAttorney: "A. Mehta",
			CreatedAt:    time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	for i := 0; i < 6; i++ {
		db.Create(&models.Notification{Heading: "Alert", Level: models.NotificationLevelInfo})
	}

	data, err := service.Snapshot("A. Mehta")
	assert.NoError(t, err)

	assert.Len(t, data.Lists.RecentCases, 5)
	// Newest first
	assert.Equal(t, "CP-A", data.Lists.RecentCases[0].Ref)
	assert.Len(t, data.Lists.LatestAlerts, 5)
}
