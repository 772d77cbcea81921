// Package planner derives calendar views of the outfit collection.
// All functions are pure projections; nothing here mutates outfits.
package planner

import (
	"time"

	"digistyle/internal/model"
)

// Week strip bounds around today, matching the planner's horizontal
// day strip: a little history, most of a week ahead.
const (
	weekStripBefore = 2
	weekStripLength = 7
)

// OutfitsOn returns the outfits scheduled on the given calendar day in
// loc, preserving input order. An outfit with no explicit schedule
// counts as scheduled on its creation day. Comparison is by local
// calendar date, not exact timestamp.
func OutfitsOn(outfits []model.Outfit, day time.Time, loc *time.Location) []model.Outfit {
	matched := make([]model.Outfit, 0, len(outfits))
	for _, outfit := range outfits {
		at := time.UnixMilli(outfit.ScheduledAt()).In(loc)
		if sameDay(at, day.In(loc)) {
			matched = append(matched, outfit)
		}
	}
	return matched
}

// WeekStrip returns the seven days shown in the horizontal strip,
// anchored to today−2 through today+4.
func WeekStrip(today time.Time) []time.Time {
	days := make([]time.Time, weekStripLength)
	for i := range days {
		days[i] = today.AddDate(0, 0, i-weekStripBefore)
	}
	return days
}

// MonthGrid returns the cells of a Sunday-first month grid for the
// month containing ref. Leading cells before the 1st are zero times so
// the first day of the month aligns with its weekday; callers render
// them blank.
func MonthGrid(ref time.Time) []time.Time {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())

	cells := make([]time.Time, 0, 37)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, time.Time{})
	}

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		cells = append(cells, d)
	}
	return cells
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
