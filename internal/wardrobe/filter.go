// Package wardrobe derives read-side views of the item collection.
package wardrobe

import (
	"strings"

	"digistyle/internal/model"
)

// FilterAll is the category filter value that matches every item.
const FilterAll = "All"

// Filter returns the items matching both the category filter and the
// search text, preserving the input (most-recent-first) order.
//
// The category must match exactly, or be FilterAll. The search is a
// case-insensitive substring match against the sub-category or any
// tag; an empty query matches everything.
func Filter(items []model.ClothingItem, category, query string) []model.ClothingItem {
	query = strings.ToLower(query)

	matched := make([]model.ClothingItem, 0, len(items))
	for _, item := range items {
		if category != FilterAll && item.Category != model.Category(category) {
			continue
		}
		if !matchesQuery(item, query) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func matchesQuery(item model.ClothingItem, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.SubCategory), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
