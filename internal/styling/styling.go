// Package styling implements the outfit-composition canvas: an ordered
// selection of wardrobe items that can be saved as a scheduled outfit.
package styling

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"digistyle/internal/model"
)

// ErrEmptySelection is returned when saving an outfit with no active items.
var ErrEmptySelection = errors.New("cannot save an outfit with no items")

// DefaultTags are applied to outfits saved from the canvas.
var DefaultTags = []string{"Stylist"}

// Canvas holds the working selection. Selection order only affects
// display layout, never outfit identity.
type Canvas struct {
	selected []string
}

// Toggle flips membership of id in the selection: selecting an
// already-selected id removes it.
func (c *Canvas) Toggle(id string) {
	for i, existing := range c.selected {
		if existing == id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return
		}
	}
	c.selected = append(c.selected, id)
}

// Selected returns the selection in pick order.
func (c *Canvas) Selected() []string {
	out := make([]string, len(c.selected))
	copy(out, c.selected)
	return out
}

// Clear empties the selection.
func (c *Canvas) Clear() {
	c.selected = nil
}

// ActiveItems derives the candidate outfit fresh from the live item
// collection: selected ids whose item still exists, in selection
// order. An item deleted from the wardrobe silently drops out.
func (c *Canvas) ActiveItems(live []model.ClothingItem) []model.ClothingItem {
	byID := make(map[string]model.ClothingItem, len(live))
	for _, item := range live {
		byID[item.ID] = item
	}

	var active []model.ClothingItem
	for _, id := range c.selected {
		if item, ok := byID[id]; ok {
			active = append(active, item)
		}
	}
	return active
}

// BuildOutfit snapshots the active items into a new outfit scheduled
// for scheduledAt. The snapshot embeds full item copies, so deleting a
// wardrobe item later leaves the outfit intact.
func (c *Canvas) BuildOutfit(live []model.ClothingItem, scheduledAt time.Time) (model.Outfit, error) {
	active := c.ActiveItems(live)
	if len(active) == 0 {
		return model.Outfit{}, ErrEmptySelection
	}

	return model.Outfit{
		ID:            uuid.NewString(),
		Items:         active,
		DateCreated:   time.Now().UnixMilli(),
		ScheduledDate: scheduledAt.UnixMilli(),
		Tags:          append([]string(nil), DefaultTags...),
	}, nil
}

// CombineSchedule merges a calendar day and a time-of-day into the
// single timestamp an outfit is scheduled at, in day's location.
func CombineSchedule(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
