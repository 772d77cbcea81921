package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digistyle/internal/model"
)

func scheduledOutfit(id string, at time.Time) model.Outfit {
	return model.Outfit{
		ID:            id,
		DateCreated:   at.Add(-48 * time.Hour).UnixMilli(),
		ScheduledDate: at.UnixMilli(),
	}
}

func TestOutfitsOnMatchesCalendarDayNotTimestamp(t *testing.T) {
	loc := time.UTC
	outfits := []model.Outfit{
		scheduledOutfit("late", time.Date(2024, 3, 5, 23, 30, 0, 0, loc)),
		scheduledOutfit("early", time.Date(2024, 3, 5, 0, 10, 0, 0, loc)),
		scheduledOutfit("next", time.Date(2024, 3, 6, 0, 5, 0, 0, loc)),
	}

	day := time.Date(2024, 3, 5, 12, 0, 0, 0, loc)
	got := OutfitsOn(outfits, day, loc)
	require.Len(t, got, 2)
	assert.Equal(t, "late", got[0].ID)
	assert.Equal(t, "early", got[1].ID)

	next := OutfitsOn(outfits, time.Date(2024, 3, 6, 12, 0, 0, 0, loc), loc)
	require.Len(t, next, 1)
	assert.Equal(t, "next", next[0].ID)
}

func TestOutfitsOnFallsBackToCreationDay(t *testing.T) {
	loc := time.UTC
	created := time.Date(2024, 3, 5, 18, 0, 0, 0, loc)
	outfits := []model.Outfit{{ID: "unscheduled", DateCreated: created.UnixMilli()}}

	got := OutfitsOn(outfits, created, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "unscheduled", got[0].ID)

	assert.Empty(t, OutfitsOn(outfits, created.AddDate(0, 0, 1), loc))
}

func TestOutfitsOnEmptyResultIsEmptyNotNil(t *testing.T) {
	got := OutfitsOn(nil, time.Now(), time.Local)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWeekStripAnchoredAroundToday(t *testing.T) {
	today := time.Date(2024, 3, 5, 15, 4, 5, 0, time.Local)
	strip := WeekStrip(today)

	require.Len(t, strip, 7)
	assert.Equal(t, 3, strip[0].Day(), "starts at today minus 2")
	assert.Equal(t, 5, strip[2].Day(), "today sits at index 2")
	assert.Equal(t, 9, strip[6].Day(), "ends at today plus 4")
}

func TestMonthGridPadsToFirstWeekday(t *testing.T) {
	// March 2024 starts on a Friday (weekday 5, Sunday-first).
	grid := MonthGrid(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	require.Len(t, grid, 5+31)
	for i := 0; i < 5; i++ {
		assert.True(t, grid[i].IsZero(), "cell %d should be padding", i)
	}
	assert.Equal(t, 1, grid[5].Day())
	assert.Equal(t, 31, grid[len(grid)-1].Day())
}

func TestMonthGridNoPaddingWhenMonthStartsSunday(t *testing.T) {
	// September 2024 starts on a Sunday.
	grid := MonthGrid(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, grid, 30)
	assert.Equal(t, 1, grid[0].Day())
}
