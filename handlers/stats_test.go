package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"casepilot/models"
	"casepilot/services"

	"github.com/stretchr/testify/assert"
)

func TestGetStatsHandler(t *testing.T) {
	testDB := setupTestDB(t)

	filed := time.Now().AddDate(0, 0, -20)
	testDB.Create(&models.Case{Ref: "CP-1", Title: "Active case", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "Arjun Mehta", FiledOn: &filed, PortfolioValue: 50000})
	testDB.Create(&models.Case{Ref: "CP-2", Title: "Closed case", Category: "Family", Status: models.CaseStatusClosed, LeadAttorney: "Arjun Mehta", FiledOn: &filed})
	testDB.Create(&models.Task{Title: "A task", Owner: "Arjun Mehta", Stage: models.TaskStageTodo, Progress: 40})

	_, c, rec := setupEcho(http.MethodGet, "/api/stats", nil)
	setIdentity(c, "Arjun Mehta", "arjun@firm.test")

	assert.NoError(t, GetStatsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var data services.DashboardData
	assert.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, int64(2), data.Counts.TotalCases)
	assert.Equal(t, int64(1), data.Counts.ActiveCases)
	assert.Equal(t, int64(50000), data.Aggregated.TotalPortfolioValue)
	assert.Equal(t, int64(2), data.MyWork.MyCases)
	assert.Equal(t, int64(1), data.MyWork.MyOpenTasks)
}

func TestGetStatsHandler_EmptyDatabase(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/stats", nil)
	setIdentity(c, "", "")

	assert.NoError(t, GetStatsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	// Chart slices must serialize as arrays, not null
	var raw map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(env.Data, &raw))
	var charts map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(raw["charts"], &charts))
	for name, value := range charts {
		assert.NotEqual(t, "null", string(value), "chart %s is null", name)
	}
}

func TestGetInsightsHandler(t *testing.T) {
	testDB := setupTestDB(t)

	filed := time.Now().AddDate(0, 0, -15)
	testDB.Create(&models.Case{Ref: "CP-1", Title: "Won it", Category: "Civil", Status: models.CaseStatusClosed, LeadAttorney: "Arjun Mehta", FiledOn: &filed, Labels: []string{"won"}})
	testDB.Create(&models.Case{Ref: "CP-2", Title: "Still going", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "Arjun Mehta", FiledOn: &filed})

	_, c, rec := setupEcho(http.MethodGet, "/api/stats/insights?range=6m", nil)

	assert.NoError(t, GetInsightsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var data services.InsightsData
	assert.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, 2, data.Performance.TotalInRange)
	assert.Equal(t, 1, data.Performance.ClosedCount)
	assert.Equal(t, 50, data.Performance.ResolutionRate)
	assert.Equal(t, []services.NameValue{{Name: "Won", Value: 1}}, data.Performance.CaseOutcomes)
	assert.Equal(t, []string{"Arjun Mehta"}, data.Filters.Attorneys)
}

func TestGetInsightsHandler_DefaultRange(t *testing.T) {
	testDB := setupTestDB(t)

	// Filed 8 months ago: outside 6m, inside the 12m default
	old := time.Now().AddDate(0, -8, 0)
	testDB.Create(&models.Case{Ref: "CP-1", Title: "Old", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "Arjun Mehta", FiledOn: &old})

	_, c, rec := setupEcho(http.MethodGet, "/api/stats/insights", nil)
	assert.NoError(t, GetInsightsHandler(c))

	env := decodeEnvelope(t, rec)
	var data services.InsightsData
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Performance.TotalInRange)
}

func TestPingHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/api/ping", nil)
	assert.NoError(t, PingHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
