package styling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digistyle/internal/model"
)

var live = []model.ClothingItem{
	{ID: "a", Category: model.CategoryTops},
	{ID: "b", Category: model.CategoryBottoms},
	{ID: "c", Category: model.CategoryShoes},
}

func TestToggleIsSetXOR(t *testing.T) {
	var c Canvas
	c.Toggle("a")
	c.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, c.Selected())

	// Toggling twice returns the selection to its original value.
	c.Toggle("c")
	c.Toggle("c")
	assert.Equal(t, []string{"a", "b"}, c.Selected())

	c.Toggle("a")
	assert.Equal(t, []string{"b"}, c.Selected())
}

func TestActiveItemsIntersectsLiveCollection(t *testing.T) {
	var c Canvas
	c.Toggle("c")
	c.Toggle("a")
	c.Toggle("ghost")

	active := c.ActiveItems(live)
	require.Len(t, active, 2)
	assert.Equal(t, "c", active[0].ID, "selection order preserved")
	assert.Equal(t, "a", active[1].ID)
}

func TestActiveItemsDropsDeletedItem(t *testing.T) {
	var c Canvas
	c.Toggle("a")
	c.Toggle("b")

	// "b" was deleted from the wardrobe while selected.
	remaining := []model.ClothingItem{live[0], live[2]}
	active := c.ActiveItems(remaining)
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].ID)
}

func TestBuildOutfitRejectsEmptySelection(t *testing.T) {
	var c Canvas
	_, err := c.BuildOutfit(live, time.Now())
	assert.ErrorIs(t, err, ErrEmptySelection)

	// Selected ids that no longer exist count as empty too.
	c.Toggle("ghost")
	_, err = c.BuildOutfit(live, time.Now())
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestBuildOutfitSnapshotsItems(t *testing.T) {
	var c Canvas
	c.Toggle("b")

	scheduled := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	outfit, err := c.BuildOutfit(live, scheduled)
	require.NoError(t, err)

	assert.NotEmpty(t, outfit.ID)
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, "b", outfit.Items[0].ID)
	assert.Equal(t, scheduled.UnixMilli(), outfit.ScheduledDate)
	assert.Equal(t, []string{"Stylist"}, outfit.Tags)
	assert.NotZero(t, outfit.DateCreated)
}

func TestBuildOutfitMintsDistinctIDs(t *testing.T) {
	var c Canvas
	c.Toggle("a")

	first, err := c.BuildOutfit(live, time.Now())
	require.NoError(t, err)
	second, err := c.BuildOutfit(live, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCombineSchedule(t *testing.T) {
	day := time.Date(2024, 3, 5, 17, 45, 12, 0, time.Local)
	combined := CombineSchedule(day, 9, 30)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local), combined)
}
