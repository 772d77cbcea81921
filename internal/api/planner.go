package api

import (
	"net/http"
	"time"

	"digistyle/internal/planner"
	"digistyle/internal/store"
)

// PlannerHandler serves the calendar projections of the outfit
// collection. Selecting a day only changes the projection; it never
// mutates outfits.
type PlannerHandler struct {
	Store *store.Store
}

const dayFormat = "2006-01-02"

// Day handles GET /api/planner?date=YYYY-MM-DD (default today):
// the selected day's outfits plus the week strip around today.
func (h *PlannerHandler) Day(w http.ResponseWriter, r *http.Request) {
	selected := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(dayFormat, raw, time.Local)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		selected = parsed
	}

	week := make([]string, 0, 7)
	for _, d := range planner.WeekStrip(time.Now()) {
		week = append(week, d.Format(dayFormat))
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"date":    selected.Format(dayFormat),
		"week":    week,
		"outfits": planner.OutfitsOn(h.Store.Outfits(), selected, time.Local),
	})
}

// Month handles GET /api/planner/month?month=YYYY-MM (default current
// month): the Sunday-first month grid, padding cells rendered as null.
func (h *PlannerHandler) Month(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		ref = parsed
	}

	cells := make([]*string, 0, 37)
	for _, c := range planner.MonthGrid(ref) {
		if c.IsZero() {
			cells = append(cells, nil)
			continue
		}
		formatted := c.Format(dayFormat)
		cells = append(cells, &formatted)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"month": ref.Format("2006-01"),
		"cells": cells,
	})
}
