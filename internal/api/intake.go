package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"digistyle/internal/analysis"
	"digistyle/internal/intake"
)

// IntakeHandler drives the add-item workflow over HTTP. One session
// per upload; the session id threads through the follow-up calls.
type IntakeHandler struct {
	Manager *intake.Manager
}

// formImage extracts the "image" file from a multipart upload, writing
// the error response itself when the form is unusable.
func formImage(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	// Limit to 10 MB; the image is downscaled right after anyway.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return nil, false
	}
	return file, true
}

// Begin handles POST /api/intake: a multipart upload with an "image"
// file. On success the session is in the preview step.
func (h *IntakeHandler) Begin(w http.ResponseWriter, r *http.Request) {
	file, ok := formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	session, err := h.Manager.Begin(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	jsonResponse(w, http.StatusCreated, session.Snapshot())
}

// AttachImage handles POST /api/intake/{id}/image: a replacement
// multipart upload for a session that went back to the upload step.
func (h *IntakeHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	file, ok := formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	id := r.PathValue("id")
	err := h.Manager.Attach(id, file)
	switch {
	case err == nil:
	case errors.Is(err, intake.ErrNotFound), errors.Is(err, intake.ErrWrongState):
		h.workflowError(w, err, "could not attach image")
		return
	default:
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondSnapshot(w, id)
}

// Get handles GET /api/intake/{id}.
func (h *IntakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.Manager.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "intake session not found")
		return
	}
	jsonResponse(w, http.StatusOK, session.Snapshot())
}

// RemoveBackground handles POST /api/intake/{id}/remove-background.
func (h *IntakeHandler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Manager.RemoveBackground(r.Context(), id); err != nil {
		h.workflowError(w, err, "could not remove background, try again or skip this step")
		return
	}
	h.respondSnapshot(w, id)
}

// Undo handles POST /api/intake/{id}/undo: restores the original image.
func (h *IntakeHandler) Undo(w http.ResponseWriter, r *http.Request) {
	session, err := h.Manager.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "intake session not found")
		return
	}
	if err := session.Undo(); err != nil {
		h.workflowError(w, err, "nothing to undo")
		return
	}
	jsonResponse(w, http.StatusOK, session.Snapshot())
}

// Analyze handles POST /api/intake/{id}/analyze: classifies the
// working image and advances to the details step.
func (h *IntakeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Manager.Analyze(r.Context(), id); err != nil {
		h.workflowError(w, err, "failed to analyze image, please try again")
		return
	}
	h.respondSnapshot(w, id)
}

type saveIntakeRequest struct {
	SubCategory string `json:"subCategory"`
}

// Save handles POST /api/intake/{id}/save: mints the item and ends the
// session.
func (h *IntakeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveIntakeRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	item, err := h.Manager.Save(r.PathValue("id"), req.SubCategory)
	if err != nil {
		h.workflowError(w, err, "could not save item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Back handles POST /api/intake/{id}/back: one step backward.
func (h *IntakeHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.Manager.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "intake session not found")
		return
	}
	if err := session.Back(); err != nil {
		h.workflowError(w, err, "cannot go back")
		return
	}
	jsonResponse(w, http.StatusOK, session.Snapshot())
}

// Discard handles DELETE /api/intake/{id}: abandons the workflow.
func (h *IntakeHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.Discard(r.PathValue("id")); err != nil {
		jsonError(w, http.StatusNotFound, "intake session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *IntakeHandler) respondSnapshot(w http.ResponseWriter, id string) {
	session, err := h.Manager.Get(id)
	if err != nil {
		jsonError(w, http.StatusNotFound, "intake session not found")
		return
	}
	jsonResponse(w, http.StatusOK, session.Snapshot())
}

// workflowError maps intake and analysis errors to HTTP responses.
// Analysis failures are non-fatal: the session stays where it was and
// the user may retry manually.
func (h *IntakeHandler) workflowError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, intake.ErrNotFound):
		jsonError(w, http.StatusNotFound, "intake session not found")
	case errors.Is(err, intake.ErrBusy):
		jsonError(w, http.StatusConflict, "an analysis call is already in progress")
	case errors.Is(err, intake.ErrWrongState),
		errors.Is(err, intake.ErrNotModified),
		errors.Is(err, intake.ErrAlreadyModified):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, analysis.ErrInvalidConfig):
		jsonError(w, http.StatusServiceUnavailable, "analysis service is not configured")
	default:
		jsonError(w, http.StatusBadGateway, fallback)
	}
}
