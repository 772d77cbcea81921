package api

import (
	"errors"
	"net/http"
	"time"

	"digistyle/internal/store"
	"digistyle/internal/styling"
)

// OutfitsHandler handles outfit endpoints, including saving a styled
// composition from the canvas.
type OutfitsHandler struct {
	Store *store.Store
}

type createOutfitRequest struct {
	// ItemIDs is the canvas selection in pick order.
	ItemIDs []string `json:"itemIds"`
	// Date (2006-01-02) and Time (15:04) combine into the schedule;
	// both default to now.
	Date string `json:"date"`
	Time string `json:"time"`
}

// List handles GET /api/outfits.
func (h *OutfitsHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Outfits())
}

// Create handles POST /api/outfits: the styling canvas save. The
// selection is intersected with the live wardrobe; items snapshot into
// the outfit as full copies.
func (h *OutfitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOutfitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scheduled, err := parseSchedule(req.Date, req.Time)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var canvas styling.Canvas
	for _, id := range req.ItemIDs {
		canvas.Toggle(id)
	}

	outfit, err := canvas.BuildOutfit(h.Store.Items(), scheduled)
	if err != nil {
		if errors.Is(err, styling.ErrEmptySelection) {
			jsonError(w, http.StatusBadRequest, "select at least one item")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to build outfit")
		return
	}

	h.Store.CreateOutfit(outfit)
	jsonResponse(w, http.StatusCreated, outfit)
}

// Delete handles DELETE /api/outfits/{id}; no-op on unknown ids.
func (h *OutfitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, "outfit id required")
		return
	}
	h.Store.DeleteOutfit(id)
	w.WriteHeader(http.StatusNoContent)
}

// parseSchedule combines the supplied calendar date and time-of-day
// into one local timestamp, defaulting each part to now.
func parseSchedule(date, clock string) (time.Time, error) {
	now := time.Now()

	day := now
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, errors.New("date must be YYYY-MM-DD")
		}
		day = parsed
	}

	hour, minute := now.Hour(), now.Minute()
	if clock != "" {
		parsed, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, errors.New("time must be HH:MM")
		}
		hour, minute = parsed.Hour(), parsed.Minute()
	}

	return styling.CombineSchedule(day, hour, minute), nil
}
