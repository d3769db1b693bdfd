package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"casepilot/db"
	"casepilot/models"

	"github.com/labstack/echo/v4"
)

// CalendarEvent is one dated entry on the firm calendar
type CalendarEvent struct {
	Type     string    `json:"type"` // hearing | filing | task | document
	EntityID string    `json:"entityId"`
	Label    string    `json:"label"`
	Ref      string    `json:"ref,omitempty"`
	Date     time.Time `json:"date"`
	Meta     string    `json:"meta,omitempty"`
}

// GetCalendarHandler returns every hearing, task deadline and document due
// date falling in the requested month. Defaults to the current month.
func GetCalendarHandler(c echo.Context) error {
	now := time.Now()
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1970 || year > 9999 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	events := []CalendarEvent{}

	var cases []models.Case
	err = db.DB.
		Where("hearing_date >= ? AND hearing_date < ?", from, to).
		Find(&cases).Error
	if err != nil {
		return err
	}
	for _, cs := range cases {
		events = append(events, CalendarEvent{
			Type:     "hearing",
			EntityID: cs.ID,
			Label:    cs.Title,
			Ref:      cs.Ref,
			Date:     *cs.HearingDate,
			Meta:     cs.Court,
		})
	}

	var filed []models.Case
	err = db.DB.
		Where("filed_on >= ? AND filed_on < ?", from, to).
		Find(&filed).Error
	if err != nil {
		return err
	}
	for _, cs := range filed {
		events = append(events, CalendarEvent{
			Type:     "filing",
			EntityID: cs.ID,
			Label:    cs.Title,
			Ref:      cs.Ref,
			Date:     *cs.FiledOn,
			Meta:     cs.Category,
		})
	}

	var tasks []models.Task
	err = db.DB.
		Where("deadline >= ? AND deadline < ?", from, to).
		Find(&tasks).Error
	if err != nil {
		return err
	}
	for _, t := range tasks {
		events = append(events, CalendarEvent{
			Type:     "task",
			EntityID: t.ID,
			Label:    t.Title,
			Date:     *t.Deadline,
			Meta:     t.Owner,
		})
	}

	var documents []models.Document
	err = db.DB.
		Where("due_by >= ? AND due_by < ?", from, to).
		Find(&documents).Error
	if err != nil {
		return err
	}
	for _, d := range documents {
		events = append(events, CalendarEvent{
			Type:     "document",
			EntityID: d.ID,
			Label:    d.Name,
			Date:     *d.DueBy,
			Meta:     d.ReviewStatus,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return respondData(c, http.StatusOK, events)
}
