package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

// scenarioRequest is the write-endpoint payload. The ID on create is
// optional; the server assigns one when absent.
type scenarioRequest struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  scenario.Parameters `json:"parameters"`
}

// newScenarioRequest returns the request with boundary defaults set, so
// an omitted enable_constraints decodes to true while an explicit false
// survives.
func newScenarioRequest() scenarioRequest {
	var req scenarioRequest
	req.Parameters.EnableConstraints = true
	return req
}

// validationFailure is returned when stored-scenario parameters fail
// validation, carrying the full report so clients can show every issue.
type validationFailure struct {
	Error      string              `json:"error"`
	Validation scenario.Validation `json:"validation"`
}

func (h *Handler) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	req := newScenarioRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	if v := scenario.Validate(req.Parameters); !v.Valid {
		writeJSON(w, http.StatusBadRequest, validationFailure{
			Error:      "scenario parameters failed validation",
			Validation: v,
		})
		return
	}

	created, err := h.store.Create(r.Context(), scenario.Scenario{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Parameters:  req.Parameters,
	})
	if err != nil {
		if errors.Is(err, store.ErrScenarioExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("create scenario")
		writeError(w, http.StatusInternalServerError, "failed to store scenario")
		return
	}

	h.log.Info().Str("scenario_id", created.ID).Str("operation", "create").Msg("scenario stored")
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list scenarios")
		writeError(w, http.StatusInternalServerError, "failed to list scenarios")
		return
	}

	summaries := make([]scenario.Summary, 0, len(all))
	for _, sc := range all {
		summaries = append(summaries, scenario.Summarize(sc))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		h.log.Error().Err(err).Msg("get scenario")
		writeError(w, http.StatusInternalServerError, "failed to load scenario")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *Handler) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	req := newScenarioRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	if v := scenario.Validate(req.Parameters); !v.Valid {
		writeJSON(w, http.StatusBadRequest, validationFailure{
			Error:      "scenario parameters failed validation",
			Validation: v,
		})
		return
	}

	updated, err := h.store.Update(r.Context(), scenario.Scenario{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		Parameters:  req.Parameters,
	})
	if err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		h.log.Error().Err(err).Msg("update scenario")
		writeError(w, http.StatusInternalServerError, "failed to update scenario")
		return
	}

	h.log.Info().Str("scenario_id", updated.ID).Str("operation", "update").Msg("scenario replaced")
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		h.log.Error().Err(err).Msg("delete scenario")
		writeError(w, http.StatusInternalServerError, "failed to delete scenario")
		return
	}

	h.log.Info().Str("scenario_id", id).Str("operation", "delete").Msg("scenario removed")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	params := scenario.Parameters{EnableConstraints: true}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenario.Validate(params))
}
