package api

import (
	"net/http"

	"digistyle/internal/model"
	"digistyle/internal/store"
)

// ProfileHandler handles the user profile endpoints.
type ProfileHandler struct {
	Store *store.Store
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Profile())
}

// Put handles PUT /api/profile.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := decodeJSON(r, &profile); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.Store.SetProfile(profile)
	jsonResponse(w, http.StatusOK, profile)
}
