package model

// Category is the closed set of wardrobe categories.
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryOuterwear   Category = "Outerwear"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
	CategoryDresses     Category = "Dresses"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryTops,
		CategoryBottoms,
		CategoryOuterwear,
		CategoryShoes,
		CategoryAccessories,
		CategoryDresses,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryOuterwear,
		CategoryShoes, CategoryAccessories, CategoryDresses:
		return true
	}
	return false
}

// Season is the closed set of wear seasons.
type Season string

const (
	SeasonSummer Season = "Summer"
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonAutumn Season = "Autumn"
	SeasonAll    Season = "All Season"
)

// Valid reports whether s is a member of the closed season set.
func (s Season) Valid() bool {
	switch s {
	case SeasonSummer, SeasonWinter, SeasonSpring, SeasonAutumn, SeasonAll:
		return true
	}
	return false
}

// ClothingItem is a single garment in the wardrobe. Items are immutable
// once created; the only operations are add and delete.
//
// Timestamps are epoch milliseconds and field names follow the stored
// JSON encoding, so previously persisted wardrobes decode unchanged.
type ClothingItem struct {
	ID string `json:"id"`
	// ImageURL is the display image: a JPEG data URI or a remote URL.
	ImageURL string `json:"imageUrl"`
	// OriginalImageURL is the pre-background-removal image. Present
	// only if background removal was applied; enables undo.
	OriginalImageURL string   `json:"originalImageUrl,omitempty"`
	Category         Category `json:"category"`
	SubCategory      string   `json:"subCategory,omitempty"`
	Color            []string `json:"color"`
	Season           []Season `json:"season"`
	Tags             []string `json:"tags"`
	DateAdded        int64    `json:"dateAdded"`
}
