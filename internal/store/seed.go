package store

import (
	"time"

	"digistyle/internal/model"
)

// SeedItems returns the demonstration wardrobe used when no stored
// state exists yet.
func SeedItems() []model.ClothingItem {
	now := time.Now().UnixMilli()
	return []model.ClothingItem{
		{
			ID:          "1",
			ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=400&q=80",
			Category:    model.CategoryTops,
			SubCategory: "T-Shirt",
			Color:       []string{"White"},
			Season:      []model.Season{model.SeasonSummer, model.SeasonSpring},
			Tags:        []string{"Basic", "Casual"},
			DateAdded:   now,
		},
		{
			ID:          "2",
			ImageURL:    "https://images.unsplash.com/photo-1542272454315-4c01d7abdf4a?auto=format&fit=crop&w=400&q=80",
			Category:    model.CategoryBottoms,
			SubCategory: "Jeans",
			Color:       []string{"Blue"},
			Season:      []model.Season{model.SeasonAll},
			Tags:        []string{"Denim", "Vintage"},
			DateAdded:   now,
		},
		{
			ID:          "3",
			ImageURL:    "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?auto=format&fit=crop&w=400&q=80",
			Category:    model.CategoryShoes,
			SubCategory: "Boots",
			Color:       []string{"Blue"},
			Season:      []model.Season{model.SeasonWinter, model.SeasonAutumn},
			Tags:        []string{"Leather"},
			DateAdded:   now,
		},
	}
}
