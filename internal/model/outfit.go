package model

// Outfit is a saved composition of wardrobe items. It embeds full item
// snapshots rather than references, so deleting an item later does not
// corrupt outfits that already include it.
type Outfit struct {
	ID    string         `json:"id"`
	Items []ClothingItem `json:"items"`
	// DateCreated is the save time in epoch milliseconds.
	DateCreated int64 `json:"dateCreated"`
	// ScheduledDate is the planned wear time in epoch milliseconds.
	// Zero means unscheduled; the planner then falls back to the
	// creation day.
	ScheduledDate int64    `json:"scheduledDate,omitempty"`
	Tags          []string `json:"tags"`
}

// ScheduledAt returns the effective schedule timestamp, falling back to
// the creation time when no explicit schedule was set.
func (o Outfit) ScheduledAt() int64 {
	if o.ScheduledDate != 0 {
		return o.ScheduledDate
	}
	return o.DateCreated
}
