package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"casepilot/models"

	"gorm.io/gorm"
)

// InsightsService computes the deep-dive analytics behind
// GET /api/stats/insights. All methods are read-only.
type InsightsService struct {
	DB *gorm.DB
}

func NewInsightsService(db *gorm.DB) *InsightsService {
	return &InsightsService{DB: db}
}

// InsightsParams are the request-level filters for the insights report.
type InsightsParams struct {
	Range    string // one of 1m, 3m, 6m, 12m, all
	Attorney string
	Category string
}

// NameValue is a generic chart entry.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PerformanceMetrics holds resolution-quality KPIs.
type PerformanceMetrics struct {
	ResolutionRate int         `json:"resolutionRate"`
	AvgDaysToClose int         `json:"avgDaysToClose"`
	TaskOnTimeRate int         `json:"taskOnTimeRate"`
	TotalInRange   int         `json:"totalInRange"`
	ClosedCount    int         `json:"closedCount"`
	CaseOutcomes   []NameValue `json:"caseOutcomes"`
}

// AttorneyWorkload is the per-attorney case rollup.
type AttorneyWorkload struct {
	Name  string `json:"name"`
	Cases int    `json:"cases"`
	Value int64  `json:"value"`
}

// AttorneyBillable is the per-attorney hours rollup.
type AttorneyBillable struct {
	Name    string  `json:"name"`
	Planned float64 `json:"planned"`
	Logged  float64 `json:"logged"`
}

// AttorneyCompletion is the per-attorney task completion quality rollup.
type AttorneyCompletion struct {
	Name    string `json:"name"`
	OnTime  int    `json:"onTime"`
	Late    int    `json:"late"`
	Pending int    `json:"pending"`
	Rate    int    `json:"rate"`
}

// AttorneyAvgValue is the average portfolio value per case, per attorney.
type AttorneyAvgValue struct {
	Name     string `json:"name"`
	AvgValue int64  `json:"avgValue"`
}

// AttorneyMetrics groups the attorney-performance section.
type AttorneyMetrics struct {
	AttorneyWorkload         []AttorneyWorkload   `json:"attorneyWorkload"`
	BillableByAttorney       []AttorneyBillable   `json:"billableByAttorney"`
	TaskCompletionByAttorney []AttorneyCompletion `json:"taskCompletionByAttorney"`
	AvgCaseValue             []AttorneyAvgValue   `json:"avgCaseValue"`
}

// PipelineMetrics describes the in-range case population shape.
type PipelineMetrics struct {
	Funnel     []NameValue              `json:"funnel"`
	Heatmap    []map[string]interface{} `json:"heatmap"`
	Statuses   []string                 `json:"statuses"`
	Categories []string                 `json:"categories"`
}

// DocumentMetrics groups the document-health section.
type DocumentMetrics struct {
	DocsByStatus []NameValue `json:"docsByStatus"`
}

// FilterOptions lists the values available for the filter UI, discovered
// across all cases (not range-filtered).
type FilterOptions struct {
	Attorneys  []string `json:"attorneys"`
	Categories []string `json:"categories"`
}

// InsightsData is the full insights response payload.
type InsightsData struct {
	Filters     FilterOptions      `json:"filters"`
	Performance PerformanceMetrics `json:"performance"`
	Attorneys   AttorneyMetrics    `json:"attorneys"`
	Pipeline    PipelineMetrics    `json:"pipeline"`
	Documents   DocumentMetrics    `json:"documents"`
}

// outcomeOrder is the label classification priority for closed cases. First
// match wins; "won" beats "settled" and so on.
var outcomeOrder = []struct {
	label   string
	outcome string
}{
	{"won", "Won"},
	{"settled", "Settled"},
	{"dismissed", "Dismissed"},
	{"lost", "Lost"},
}

// ResolveDateFrom translates a range token into the lower bound of the date
// window. Unrecognized tokens silently fall back to the 12-month default;
// "all" yields the epoch origin.
func ResolveDateFrom(rangeToken string, now time.Time) time.Time {
	switch rangeToken {
	case "1m":
		return now.AddDate(0, -1, 0)
	case "3m":
		return now.AddDate(0, -3, 0)
	case "6m":
		return now.AddDate(0, -6, 0)
	case "all":
		return time.Unix(0, 0).UTC()
	default: // 12m and anything unrecognized
		return now.AddDate(-1, 0, 0)
	}
}

// Compute runs the full insights aggregation for the given filters.
func (s *InsightsService) Compute(params InsightsParams) (*InsightsData, error) {
	now := time.Now()
	dateFrom := ResolveDateFrom(params.Range, now)

	// Cases in range, by business-relevant date (filed_on)
	var casesInRange []models.Case
	if err := s.caseQuery(dateFrom, params).Find(&casesInRange).Error; err != nil {
		return nil, err
	}

	// Tasks in range, by deadline
	var tasksInRange []models.Task
	if err := s.taskQuery(dateFrom, params).Find(&tasksInRange).Error; err != nil {
		return nil, err
	}

	closedInRange := make([]models.Case, 0, len(casesInRange))
	for _, cs := range casesInRange {
		if cs.IsClosed() {
			closedInRange = append(closedInRange, cs)
		}
	}

	performance := computePerformance(casesInRange, closedInRange, tasksInRange)

	attorneys, err := s.computeAttorneys(dateFrom, params, tasksInRange)
	if err != nil {
		return nil, err
	}

	pipeline := computePipeline(casesInRange)

	documents, err := s.computeDocuments(dateFrom, params)
	if err != nil {
		return nil, err
	}

	filters, err := s.filterOptions()
	if err != nil {
		return nil, err
	}

	return &InsightsData{
		Filters:     *filters,
		Performance: performance,
		Attorneys:   attorneys,
		Pipeline:    pipeline,
		Documents:   documents,
	}, nil
}

// caseQuery builds the in-range case predicate: filed on or after dateFrom,
// optionally narrowed to one attorney and one category.
func (s *InsightsService) caseQuery(dateFrom time.Time, params InsightsParams) *gorm.DB {
	q := s.DB.Model(&models.Case{}).Where("filed_on >= ?", dateFrom)
	if params.Attorney != "" {
		q = q.Where("lead_attorney = ?", params.Attorney)
	}
	if params.Category != "" {
		q = q.Where("category = ?", params.Category)
	}
	return q
}

// taskQuery builds the in-range task predicate keyed on deadline.
func (s *InsightsService) taskQuery(dateFrom time.Time, params InsightsParams) *gorm.DB {
	q := s.DB.Model(&models.Task{}).Where("deadline >= ?", dateFrom)
	if params.Attorney != "" {
		q = q.Where("owner = ?", params.Attorney)
	}
	return q
}

// docQuery builds the in-range document predicate keyed on due_by.
func (s *InsightsService) docQuery(dateFrom time.Time, params InsightsParams) *gorm.DB {
	q := s.DB.Model(&models.Document{}).Where("due_by >= ?", dateFrom)
	if params.Attorney != "" {
		q = q.Where("prepared_by = ?", params.Attorney)
	}
	return q
}

func computePerformance(casesInRange, closedInRange []models.Case, tasksInRange []models.Task) PerformanceMetrics {
	totalInRange := len(casesInRange)
	closedCount := len(closedInRange)

	resolutionRate := 0
	if totalInRange > 0 {
		resolutionRate = roundRate(closedCount, totalInRange)
	}

	// Average days to close. Closed cases missing either timestamp are
	// excluded entirely, not counted as zero.
	var daySum, dayCount int
	for _, cs := range closedInRange {
		if cs.FiledOn == nil || cs.UpdatedAt.IsZero() {
			continue
		}
		days := int(math.Round(cs.UpdatedAt.Sub(*cs.FiledOn).Hours() / 24))
		daySum += days
		dayCount++
	}
	avgDaysToClose := 0
	if dayCount > 0 {
		avgDaysToClose = int(math.Round(float64(daySum) / float64(dayCount)))
	}

	// Task on-time rate across Done tasks. A task with no deadline or no
	// resolution timestamp counts as on time.
	var completed, onTime int
	for _, t := range tasksInRange {
		if !t.IsDone() {
			continue
		}
		completed++
		if taskOnTime(t) {
			onTime++
		}
	}
	taskOnTimeRate := 0
	if completed > 0 {
		taskOnTimeRate = roundRate(onTime, completed)
	}

	return PerformanceMetrics{
		ResolutionRate: resolutionRate,
		AvgDaysToClose: avgDaysToClose,
		TaskOnTimeRate: taskOnTimeRate,
		TotalInRange:   totalInRange,
		ClosedCount:    closedCount,
		CaseOutcomes:   classifyOutcomes(closedInRange),
	}
}

// classifyOutcomes buckets each closed case into exactly one outcome by label
// keyword, first match wins. When no case carried a recognized label but
// closed cases exist, a single aggregate "Resolved" entry stands in.
func classifyOutcomes(closedInRange []models.Case) []NameValue {
	counts := map[string]int{}
	for _, cs := range closedInRange {
		labels := make(map[string]bool, len(cs.Labels))
		for _, l := range cs.Labels {
			labels[strings.ToLower(l)] = true
		}
		outcome := "Other"
		for _, o := range outcomeOrder {
			if labels[o.label] {
				outcome = o.outcome
				break
			}
		}
		counts[outcome]++
	}

	outcomes := make([]NameValue, 0, len(counts))
	for _, o := range outcomeOrder {
		if n := counts[o.outcome]; n > 0 {
			outcomes = append(outcomes, NameValue{Name: o.outcome, Value: n})
		}
	}
	if n := counts["Other"]; n > 0 {
		outcomes = append(outcomes, NameValue{Name: "Other", Value: n})
	}
	if len(outcomes) == 0 && len(closedInRange) > 0 {
		outcomes = append(outcomes, NameValue{Name: "Resolved", Value: len(closedInRange)})
	}
	return outcomes
}

func (s *InsightsService) computeAttorneys(dateFrom time.Time, params InsightsParams, tasksInRange []models.Task) (AttorneyMetrics, error) {
	var workload []AttorneyWorkload
	err := s.caseQuery(dateFrom, params).
		Select("lead_attorney AS name, COUNT(*) AS cases, COALESCE(SUM(portfolio_value), 0) AS value").
		Group("lead_attorney").
		Order("cases DESC").
		Scan(&workload).Error
	if err != nil {
		return AttorneyMetrics{}, err
	}
	if workload == nil {
		workload = []AttorneyWorkload{}
	}

	var billable []AttorneyBillable
	err = s.taskQuery(dateFrom, params).
		Select("owner AS name, COALESCE(SUM(planned_hours), 0) AS planned, COALESCE(SUM(logged_hours), 0) AS logged").
		Group("owner").
		Order("logged DESC").
		Scan(&billable).Error
	if err != nil {
		return AttorneyMetrics{}, err
	}
	if billable == nil {
		billable = []AttorneyBillable{}
	}

	return AttorneyMetrics{
		AttorneyWorkload:         workload,
		BillableByAttorney:       billable,
		TaskCompletionByAttorney: completionByOwner(tasksInRange),
		AvgCaseValue:             avgCaseValues(workload),
	}, nil
}

// completionByOwner rolls up task completion quality per owner name. Tasks
// with an empty owner are skipped.
func completionByOwner(tasks []models.Task) []AttorneyCompletion {
	type bucket struct {
		total, done, onTime, late int
	}
	buckets := map[string]*bucket{}
	order := []string{}
	for _, t := range tasks {
		if t.Owner == "" {
			continue
		}
		b, ok := buckets[t.Owner]
		if !ok {
			b = &bucket{}
			buckets[t.Owner] = b
			order = append(order, t.Owner)
		}
		b.total++
		if t.IsDone() {
			b.done++
			if t.Deadline != nil && t.ResolvedAt != nil && t.ResolvedAt.After(*t.Deadline) {
				b.late++
			} else {
				b.onTime++
			}
		}
	}

	completion := make([]AttorneyCompletion, 0, len(buckets))
	for _, name := range order {
		b := buckets[name]
		rate := 0
		if b.total > 0 {
			rate = roundRate(b.done, b.total)
		}
		completion = append(completion, AttorneyCompletion{
			Name:    name,
			OnTime:  b.onTime,
			Late:    b.late,
			Pending: b.total - b.done,
			Rate:    rate,
		})
	}
	sort.SliceStable(completion, func(i, j int) bool {
		return completion[i].Rate > completion[j].Rate
	})
	return completion
}

// avgCaseValues derives the average portfolio value per case from the
// workload rollup.
func avgCaseValues(workload []AttorneyWorkload) []AttorneyAvgValue {
	avg := make([]AttorneyAvgValue, 0, len(workload))
	for _, w := range workload {
		var v int64
		if w.Cases > 0 {
			v = int64(math.Round(float64(w.Value) / float64(w.Cases)))
		}
		avg = append(avg, AttorneyAvgValue{Name: w.Name, AvgValue: v})
	}
	return avg
}

func computePipeline(casesInRange []models.Case) PipelineMetrics {
	// Status funnel in fixed pipeline order, zero counts preserved.
	funnel := make([]NameValue, 0, len(models.CaseStatusOrder))
	for _, status := range models.CaseStatusOrder {
		count := 0
		for _, cs := range casesInRange {
			if cs.Status == status {
				count++
			}
		}
		funnel = append(funnel, NameValue{Name: status, Value: count})
	}

	// Distinct categories present in range, alphabetical.
	seen := map[string]bool{}
	categories := []string{}
	for _, cs := range casesInRange {
		if !seen[cs.Category] {
			seen[cs.Category] = true
			categories = append(categories, cs.Category)
		}
	}
	sort.Strings(categories)

	// Category x status cross-tab.
	heatmap := make([]map[string]interface{}, 0, len(categories))
	for _, cat := range categories {
		row := map[string]interface{}{"category": cat}
		for _, status := range models.CaseStatusOrder {
			count := 0
			for _, cs := range casesInRange {
				if cs.Category == cat && cs.Status == status {
					count++
				}
			}
			row[status] = count
		}
		heatmap = append(heatmap, row)
	}

	return PipelineMetrics{
		Funnel:     funnel,
		Heatmap:    heatmap,
		Statuses:   models.CaseStatusOrder,
		Categories: categories,
	}
}

func (s *InsightsService) computeDocuments(dateFrom time.Time, params InsightsParams) (DocumentMetrics, error) {
	var docsInRange []models.Document
	if err := s.docQuery(dateFrom, params).Find(&docsInRange).Error; err != nil {
		return DocumentMetrics{}, err
	}

	counts := map[string]int{}
	order := []string{}
	for _, d := range docsInRange {
		if _, ok := counts[d.ReviewStatus]; !ok {
			order = append(order, d.ReviewStatus)
		}
		counts[d.ReviewStatus]++
	}

	docsByStatus := make([]NameValue, 0, len(order))
	for _, status := range order {
		docsByStatus = append(docsByStatus, NameValue{Name: status, Value: counts[status]})
	}
	return DocumentMetrics{DocsByStatus: docsByStatus}, nil
}

// filterOptions discovers distinct attorney names and categories across all
// cases, not just the current range.
func (s *InsightsService) filterOptions() (*FilterOptions, error) {
	var attorneys []string
	if err := s.DB.Model(&models.Case{}).Distinct().Pluck("lead_attorney", &attorneys).Error; err != nil {
		return nil, err
	}
	var categories []string
	if err := s.DB.Model(&models.Case{}).Distinct().Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	if attorneys == nil {
		attorneys = []string{}
	}
	if categories == nil {
		categories = []string{}
	}
	sort.Strings(attorneys)
	sort.Strings(categories)
	return &FilterOptions{Attorneys: attorneys, Categories: categories}, nil
}

// taskOnTime reports whether a completed task met its deadline. Missing
// deadline or resolution timestamp counts as on time.
func taskOnTime(t models.Task) bool {
	if t.Deadline == nil || t.ResolvedAt == nil {
		return true
	}
	return !t.ResolvedAt.After(*t.Deadline)
}

// roundRate computes part/total as a whole percentage, rounded to nearest.
func roundRate(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
