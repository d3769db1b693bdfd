package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"casepilot/models"

	"gorm.io/gorm"
)

// StatsService computes the unfiltered dashboard snapshot behind
// GET /api/stats. All methods are read-only.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// DashboardCounts are the global entity counters.
type DashboardCounts struct {
	TotalCases   int64 `json:"totalCases"`
	ActiveCases  int64 `json:"activeCases"`
	ClosedCases  int64 `json:"closedCases"`
	PendingCases int64 `json:"pendingCases"`

	TotalClients   int64 `json:"totalClients"`
	PremiumClients int64 `json:"premiumClients"`

	TotalDocs   int64 `json:"totalDocs"`
	FiledDocs   int64 `json:"filedDocs"`
	OverdueDocs int64 `json:"overdueDocs"`

	TotalTasks   int64 `json:"totalTasks"`
	DoneTasks    int64 `json:"doneTasks"`
	OverdueTasks int64 `json:"overdueTasks"`
}

// DashboardAggregated are the cross-entity computed values.
type DashboardAggregated struct {
	AvgProgress         int   `json:"avgProgress"`
	TotalPortfolioValue int64 `json:"totalPortfolioValue"`
}

// MonthCount is one month of the filing trend.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardCharts are the chart data sets.
type DashboardCharts struct {
	CasesByCategory    []NameValue        `json:"casesByCategory"`
	CasesByStatus      []NameValue        `json:"casesByStatus"`
	CasesByMonth       []MonthCount       `json:"casesByMonth"`
	TasksByStage       []NameValue        `json:"tasksByStage"`
	DocsByStatus       []NameValue        `json:"docsByStatus"`
	AttorneyWorkload   []AttorneyWorkload `json:"attorneyWorkload"`
	BillableByAttorney []AttorneyBillable `json:"billableByAttorney"`
}

// DashboardLists are the recent-activity lists.
type DashboardLists struct {
	RecentCases      []models.Case         `json:"recentCases"`
	UpcomingHearings []models.Case         `json:"upcomingHearings"`
	LatestAlerts     []models.Notification `json:"latestAlerts"`
}

// BillableSummary is an hours rollup for a single person.
type BillableSummary struct {
	Planned float64 `json:"planned"`
	Logged  float64 `json:"logged"`
}

// DeadlineItem is one entry in the merged this-week timeline.
type DeadlineItem struct {
	Type   string    `json:"type"` // hearing, task or document
	Label  string    `json:"label"`
	Ref    string    `json:"ref,omitempty"`
	Date   time.Time `json:"date"`
	Meta   string    `json:"meta"`
	Stage  string    `json:"stage,omitempty"`
	Status string    `json:"status,omitempty"`
}

// MyWork is the personalized dashboard slice for one identity string.
type MyWork struct {
	MyCases       int64           `json:"myCases"`
	MyActiveCases int64           `json:"myActiveCases"`
	MyTasks       int64           `json:"myTasks"`
	MyOpenTasks   int64           `json:"myOpenTasks"`
	MyDocs        int64           `json:"myDocs"`
	MyBillable    BillableSummary `json:"myBillable"`
	MyHearings    []models.Case   `json:"myHearings"`
	WeekDeadlines []DeadlineItem  `json:"weekDeadlines"`
}

// DashboardData is the full snapshot payload.
type DashboardData struct {
	Counts     DashboardCounts     `json:"counts"`
	Aggregated DashboardAggregated `json:"aggregated"`
	Charts     DashboardCharts     `json:"charts"`
	Lists      DashboardLists      `json:"lists"`
	MyWork     MyWork              `json:"myWork"`
}

// Snapshot computes the dashboard overview. userName scopes the "my work"
// slice; when empty, the lead attorney of the first stored case is used.
func (s *StatsService) Snapshot(userName string) (*DashboardData, error) {
	now := time.Now()

	counts, err := s.counts(now)
	if err != nil {
		return nil, err
	}

	aggregated, err := s.aggregated()
	if err != nil {
		return nil, err
	}

	charts, err := s.charts(now)
	if err != nil {
		return nil, err
	}

	lists, err := s.lists(now)
	if err != nil {
		return nil, err
	}

	if userName == "" {
		userName, err = s.fallbackIdentity()
		if err != nil {
			return nil, err
		}
	}

	myWork, err := s.myWork(userName, now)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Counts:     *counts,
		Aggregated: *aggregated,
		Charts:     *charts,
		Lists:      *lists,
		MyWork:     *myWork,
	}, nil
}

func (s *StatsService) counts(now time.Time) (*DashboardCounts, error) {
	var c DashboardCounts
	queries := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&c.TotalCases, s.DB.Model(&models.Case{})},
		{&c.ActiveCases, s.DB.Model(&models.Case{}).Where("status = ?", models.CaseStatusActive)},
		{&c.ClosedCases, s.DB.Model(&models.Case{}).Where("status = ?", models.CaseStatusClosed)},
		{&c.PendingCases, s.DB.Model(&models.Case{}).Where("status = ?", models.CaseStatusPending)},
		{&c.TotalClients, s.DB.Model(&models.Client{})},
		{&c.PremiumClients, s.DB.Model(&models.Client{}).Where("tier IN ?", []string{models.ClientTierPremium, models.ClientTierVIP})},
		{&c.TotalDocs, s.DB.Model(&models.Document{})},
		{&c.FiledDocs, s.DB.Model(&models.Document{}).Where("review_status = ?", models.DocStatusFiled)},
		{&c.OverdueDocs, s.DB.Model(&models.Document{}).
			Where("due_by < ?", now).
			Where("review_status NOT IN ?", []string{models.DocStatusFiled, models.DocStatusApproved})},
		{&c.TotalTasks, s.DB.Model(&models.Task{})},
		{&c.DoneTasks, s.DB.Model(&models.Task{}).Where("stage = ?", models.TaskStageDone)},
		{&c.OverdueTasks, s.DB.Model(&models.Task{}).
			Where("deadline < ?", now).
			Where("stage NOT IN ?", []string{models.TaskStageDone, models.TaskStageDropped})},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (s *StatsService) aggregated() (*DashboardAggregated, error) {
	var avgProgress float64
	err := s.DB.Model(&models.Task{}).
		Select("COALESCE(AVG(progress), 0)").
		Scan(&avgProgress).Error
	if err != nil {
		return nil, err
	}

	var totalPortfolio int64
	err = s.DB.Model(&models.Case{}).
		Select("COALESCE(SUM(portfolio_value), 0)").
		Scan(&totalPortfolio).Error
	if err != nil {
		return nil, err
	}

	return &DashboardAggregated{
		AvgProgress:         int(math.Round(avgProgress)),
		TotalPortfolioValue: totalPortfolio,
	}, nil
}

func (s *StatsService) charts(now time.Time) (*DashboardCharts, error) {
	charts := &DashboardCharts{
		CasesByCategory:    []NameValue{},
		CasesByStatus:      []NameValue{},
		CasesByMonth:       []MonthCount{},
		TasksByStage:       []NameValue{},
		DocsByStatus:       []NameValue{},
		AttorneyWorkload:   []AttorneyWorkload{},
		BillableByAttorney: []AttorneyBillable{},
	}

	err := s.DB.Model(&models.Case{}).
		Select("category AS name, COUNT(*) AS value").
		Group("category").
		Order("value DESC").
		Scan(&charts.CasesByCategory).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Case{}).
		Select("status AS name, COUNT(*) AS value").
		Group("status").
		Scan(&charts.CasesByStatus).Error
	if err != nil {
		return nil, err
	}

	// Filing trend over the last six calendar months, grouped by YYYY-MM.
	sixMonthsAgo := now.AddDate(0, -6, 0)
	err = s.DB.Model(&models.Case{}).
		Where("filed_on >= ?", sixMonthsAgo).
		Select("strftime('%Y-%m', filed_on) AS month, COUNT(*) AS count").
		Group("month").
		Order("month ASC").
		Scan(&charts.CasesByMonth).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Task{}).
		Select("stage AS name, COUNT(*) AS value").
		Group("stage").
		Scan(&charts.TasksByStage).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Document{}).
		Select("review_status AS name, COUNT(*) AS value").
		Group("review_status").
		Scan(&charts.DocsByStatus).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Case{}).
		Select("lead_attorney AS name, COUNT(*) AS cases, COALESCE(SUM(portfolio_value), 0) AS value").
		Group("lead_attorney").
		Order("cases DESC").
		Scan(&charts.AttorneyWorkload).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Task{}).
		Select("owner AS name, COALESCE(SUM(planned_hours), 0) AS planned, COALESCE(SUM(logged_hours), 0) AS logged").
		Group("owner").
		Order("logged DESC").
		Scan(&charts.BillableByAttorney).Error
	if err != nil {
		return nil, err
	}

	return charts, nil
}

func (s *StatsService) lists(now time.Time) (*DashboardLists, error) {
	lists := &DashboardLists{
		RecentCases:      []models.Case{},
		UpcomingHearings: []models.Case{},
		LatestAlerts:     []models.Notification{},
	}

	err := s.DB.Preload("Client").
		Order("created_at DESC").
		Limit(5).
		Find(&lists.RecentCases).Error
	if err != nil {
		return nil, err
	}

	thirtyDaysLater := now.AddDate(0, 0, 30)
	err = s.DB.Preload("Client").
		Where("hearing_date >= ? AND hearing_date <= ?", now, thirtyDaysLater).
		Order("hearing_date ASC").
		Limit(10).
		Find(&lists.UpcomingHearings).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Order("created_at DESC").
		Limit(5).
		Find(&lists.LatestAlerts).Error
	if err != nil {
		return nil, err
	}

	return lists, nil
}

// fallbackIdentity returns the lead attorney of the first stored case, or ""
// when no cases exist.
func (s *StatsService) fallbackIdentity() (string, error) {
	var first models.Case
	err := s.DB.Select("lead_attorney").Order("created_at ASC").First(&first).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return first.LeadAttorney, nil
}

func (s *StatsService) myWork(userName string, now time.Time) (*MyWork, error) {
	my := &MyWork{
		MyHearings:    []models.Case{},
		WeekDeadlines: []DeadlineItem{},
	}

	queries := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&my.MyCases, s.DB.Model(&models.Case{}).Where("lead_attorney = ?", userName)},
		{&my.MyActiveCases, s.DB.Model(&models.Case{}).
			Where("lead_attorney = ? AND status = ?", userName, models.CaseStatusActive)},
		{&my.MyTasks, s.DB.Model(&models.Task{}).Where("owner = ?", userName)},
		{&my.MyOpenTasks, s.DB.Model(&models.Task{}).
			Where("owner = ?", userName).
			Where("stage NOT IN ?", []string{models.TaskStageDone, models.TaskStageDropped})},
		{&my.MyDocs, s.DB.Model(&models.Document{}).Where("prepared_by = ?", userName)},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			return nil, err
		}
	}

	err := s.DB.Model(&models.Task{}).
		Where("owner = ?", userName).
		Select("COALESCE(SUM(planned_hours), 0) AS planned, COALESCE(SUM(logged_hours), 0) AS logged").
		Scan(&my.MyBillable).Error
	if err != nil {
		return nil, err
	}

	thirtyDaysLater := now.AddDate(0, 0, 30)
	err = s.DB.Preload("Client").
		Where("lead_attorney = ?", userName).
		Where("hearing_date >= ? AND hearing_date <= ?", now, thirtyDaysLater).
		Order("hearing_date ASC").
		Limit(5).
		Find(&my.MyHearings).Error
	if err != nil {
		return nil, err
	}

	deadlines, err := s.weekDeadlines(userName, now)
	if err != nil {
		return nil, err
	}
	my.WeekDeadlines = deadlines

	return my, nil
}

// weekDeadlines merges the user's hearings, open task deadlines and pending
// document due dates for the next seven days into one date-sorted timeline.
func (s *StatsService) weekDeadlines(userName string, now time.Time) ([]DeadlineItem, error) {
	weekEnd := now.AddDate(0, 0, 7)
	items := []DeadlineItem{}

	var hearings []models.Case
	err := s.DB.
		Where("lead_attorney = ?", userName).
		Where("hearing_date >= ? AND hearing_date <= ?", now, weekEnd).
		Find(&hearings).Error
	if err != nil {
		return nil, err
	}
	for _, cs := range hearings {
		items = append(items, DeadlineItem{
			Type:  "hearing",
			Label: cs.Title,
			Ref:   cs.Ref,
			Date:  *cs.HearingDate,
			Meta:  cs.Court,
		})
	}

	var tasks []models.Task
	err = s.DB.
		Where("owner = ?", userName).
		Where("deadline >= ? AND deadline <= ?", now, weekEnd).
		Where("stage NOT IN ?", []string{models.TaskStageDone, models.TaskStageDropped}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		items = append(items, DeadlineItem{
			Type:  "task",
			Label: t.Title,
			Date:  *t.Deadline,
			Meta:  t.Urgency,
			Stage: t.Stage,
		})
	}

	var docs []models.Document
	err = s.DB.
		Where("prepared_by = ?", userName).
		Where("due_by >= ? AND due_by <= ?", now, weekEnd).
		Where("review_status NOT IN ?", []string{models.DocStatusFiled, models.DocStatusApproved}).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		items = append(items, DeadlineItem{
			Type:   "document",
			Label:  d.Name,
			Date:   *d.DueBy,
			Meta:   d.DocType,
			Status: d.ReviewStatus,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items, nil
}
