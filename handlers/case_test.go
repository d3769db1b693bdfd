package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"casepilot/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCaseHandler(t *testing.T) {
	testDB := setupTestDB(t)

	body := jsonBody(`{"title":"Acme v. Road Runner","category":"Civil","leadAttorney":"Arjun Mehta","urgency":"High"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/cases", body)
	setIdentity(c, "Arjun Mehta", "arjun@firm.test")

	assert.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var created models.Case
	assert.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Regexp(t, `^CP-\d{4}-\d{4}$`, created.Ref)
	assert.Equal(t, models.CaseStatusPending, created.Status)

	// The change lands in the notification feed
	var alert models.Notification
	assert.NoError(t, testDB.First(&alert).Error)
	assert.Equal(t, "Case", alert.Entity)
	assert.Equal(t, models.NotificationActionCreated, alert.Action)
	assert.Equal(t, "Arjun Mehta", alert.TriggeredBy)
}

func TestCreateCaseHandler_Validation(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"category":"Civil","leadAttorney":"A"}`},
		{"missing attorney", `{"title":"T","category":"Civil"}`},
		{"bad category", `{"title":"T","category":"Nonsense","leadAttorney":"A"}`},
		{"bad status", `{"title":"T","category":"Civil","leadAttorney":"A","status":"Archived"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, c, rec := setupEcho(http.MethodPost, "/api/cases", jsonBody(tc.body))
			setIdentity(c, "Tester", "")
			assert.NoError(t, CreateCaseHandler(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
		})
	}
}

func TestCreateCaseHandler_SanitizesOverview(t *testing.T) {
	setupTestDB(t)

	body := jsonBody(`{"title":"T","category":"Civil","leadAttorney":"A","overview":"<p>ok</p><script>alert(1)</script>"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/cases", body)
	setIdentity(c, "Tester", "")

	assert.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Case
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, "<p>ok</p>", created.Overview)
}

func TestGetCasesHandler_FiltersAndPagination(t *testing.T) {
	testDB := setupTestDB(t)

	for i := 0; i < 15; i++ {
		status := models.CaseStatusActive
		if i%3 == 0 {
			status = models.CaseStatusClosed
		}
		testDB.Create(&models.Case{
			Ref: "CP-2026-" + string(rune('A'+i)), Title: "Matter", Category: "Civil",
			Status: status, LeadAttorney: "Arjun Mehta",
		})
	}

	_, c, rec := setupEcho(http.MethodGet, "/api/cases?status=Active&page=1&limit=5", nil)
	assert.NoError(t, GetCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, int64(10), *env.Total)
	assert.Equal(t, 1, *env.Page)
	assert.Equal(t, 2, *env.Pages)

	var items []models.Case
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)
}

func TestGetCasesHandler_Search(t *testing.T) {
	testDB := setupTestDB(t)

	testDB.Create(&models.Case{Ref: "CP-1", Title: "Blackwell logistics dispute", Category: "Civil", LeadAttorney: "Arjun Mehta"})
	testDB.Create(&models.Case{Ref: "CP-2", Title: "Unrelated", Category: "Civil", LeadAttorney: "Elena Vasquez"})

	_, c, rec := setupEcho(http.MethodGet, "/api/cases?search=blackwell", nil)
	assert.NoError(t, GetCasesHandler(c))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, int64(1), *env.Total)
}

func TestGetCaseHandler_NotFound(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("does-not-exist")

	assert.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Case not found", decodeEnvelope(t, rec).Error)
}

func TestUpdateCaseHandler_RefImmutable(t *testing.T) {
	testDB := setupTestDB(t)

	original := models.Case{Ref: "CP-2026-0001", Title: "Before", Category: "Civil", Status: models.CaseStatusActive, LeadAttorney: "Arjun Mehta"}
	assert.NoError(t, testDB.Create(&original).Error)

	body := jsonBody(`{"title":"After","ref":"CP-HACKED","category":"Civil","status":"Closed","leadAttorney":"Arjun Mehta"}`)
	_, c, rec := setupEcho(http.MethodPut, "/api/cases/"+original.ID, body)
	c.SetParamNames("id")
	c.SetParamValues(original.ID)
	setIdentity(c, "Arjun Mehta", "")

	assert.NoError(t, UpdateCaseHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Case
	assert.NoError(t, testDB.First(&updated, "id = ?", original.ID).Error)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, models.CaseStatusClosed, updated.Status)
	assert.Equal(t, "CP-2026-0001", updated.Ref)
}

func TestDeleteCaseHandler(t *testing.T) {
	testDB := setupTestDB(t)

	item := models.Case{Ref: "CP-1", Title: "Doomed", Category: "Civil", LeadAttorney: "Arjun Mehta"}
	assert.NoError(t, testDB.Create(&item).Error)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+item.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(item.ID)
	setIdentity(c, "Arjun Mehta", "")

	assert.NoError(t, DeleteCaseHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	testDB.Model(&models.Case{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var alert models.Notification
	assert.NoError(t, testDB.Where("action = ?", models.NotificationActionDeleted).First(&alert).Error)
	assert.Equal(t, "Case", alert.Entity)
}
