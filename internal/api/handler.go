// Package api implements the pathway-planner REST API. It exposes
// scenario CRUD backed by the SQLite store plus validation,
// optimization, and calculation endpoints backed by the engine.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/store"
)

// Handler is the top-level API handler.
type Handler struct {
	store  *store.Store
	engine *engine.Engine
	log    zerolog.Logger
}

// NewHandler wires the API against a scenario store and a calculation
// engine.
func NewHandler(st *store.Store, eng *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		store:  st,
		engine: eng,
		log:    log.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Scenario CRUD
	mux.HandleFunc("POST /api/v1/scenarios", h.handleCreateScenario)
	mux.HandleFunc("GET /api/v1/scenarios", h.handleListScenarios)
	mux.HandleFunc("GET /api/v1/scenarios/{id}", h.handleGetScenario)
	mux.HandleFunc("PUT /api/v1/scenarios/{id}", h.handleUpdateScenario)
	mux.HandleFunc("DELETE /api/v1/scenarios/{id}", h.handleDeleteScenario)

	// Analysis
	mux.HandleFunc("POST /api/v1/scenarios/validate", h.handleValidate)
	mux.HandleFunc("POST /api/v1/scenarios/{id}/optimize", h.handleOptimize)
	mux.HandleFunc("POST /api/v1/scenarios/{id}/calculate", h.handleCalculate)
	mux.HandleFunc("GET /api/v1/results/{id}", h.handleGetResult)

	// Reference data
	mux.HandleFunc("GET /api/v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /api/v1/catalog/{category}", h.handleCatalogCategory)

	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
