package api

import (
	"net/http"

	"digistyle/internal/intake"
	"digistyle/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s *store.Store, intakeManager *intake.Manager) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Store: s}
	outfitsHandler := &OutfitsHandler{Store: s}
	plannerHandler := &PlannerHandler{Store: s}
	profileHandler := &ProfileHandler{Store: s}
	intakeHandler := &IntakeHandler{Manager: intakeManager}

	// Items and the wardrobe browser view.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /api/wardrobe", itemsHandler.Browse)

	// Outfits and the styling canvas save.
	mux.HandleFunc("GET /api/outfits", outfitsHandler.List)
	mux.HandleFunc("POST /api/outfits", outfitsHandler.Create)
	mux.HandleFunc("DELETE /api/outfits/{id}", outfitsHandler.Delete)

	// Planner projections.
	mux.HandleFunc("GET /api/planner", plannerHandler.Day)
	mux.HandleFunc("GET /api/planner/month", plannerHandler.Month)

	// Item intake workflow.
	mux.HandleFunc("POST /api/intake", intakeHandler.Begin)
	mux.HandleFunc("GET /api/intake/{id}", intakeHandler.Get)
	mux.HandleFunc("POST /api/intake/{id}/image", intakeHandler.AttachImage)
	mux.HandleFunc("POST /api/intake/{id}/remove-background", intakeHandler.RemoveBackground)
	mux.HandleFunc("POST /api/intake/{id}/undo", intakeHandler.Undo)
	mux.HandleFunc("POST /api/intake/{id}/analyze", intakeHandler.Analyze)
	mux.HandleFunc("POST /api/intake/{id}/back", intakeHandler.Back)
	mux.HandleFunc("POST /api/intake/{id}/save", intakeHandler.Save)
	mux.HandleFunc("DELETE /api/intake/{id}", intakeHandler.Discard)

	// Profile.
	mux.HandleFunc("GET /api/profile", profileHandler.Get)
	mux.HandleFunc("PUT /api/profile", profileHandler.Put)

	return mux
}
