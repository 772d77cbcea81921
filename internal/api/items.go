package api

import (
	"net/http"

	"digistyle/internal/model"
	"digistyle/internal/store"
	"digistyle/internal/wardrobe"
)

// ItemsHandler handles item and wardrobe-view endpoints.
type ItemsHandler struct {
	Store *store.Store
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Items())
}

// Delete handles DELETE /api/items/{id}. Deleting an unknown id is a
// no-op; outfits embedding a copy of the item are untouched.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, "item id required")
		return
	}
	h.Store.DeleteItem(id)
	w.WriteHeader(http.StatusNoContent)
}

// Browse handles GET /api/wardrobe. Query parameters: category (a
// Category value or "All", default "All") and q (search text).
func (h *ItemsHandler) Browse(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = wardrobe.FilterAll
	}
	if category != wardrobe.FilterAll && !model.Category(category).Valid() {
		jsonError(w, http.StatusBadRequest, "unknown category")
		return
	}

	filtered := wardrobe.Filter(h.Store.Items(), category, r.URL.Query().Get("q"))
	itemCount, outfitCount := h.Store.Counts()

	jsonResponse(w, http.StatusOK, map[string]any{
		"items":       filtered,
		"itemCount":   itemCount,
		"outfitCount": outfitCount,
	})
}
