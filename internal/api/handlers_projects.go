package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ecodesign/domain/core"
	"ecodesign/domain/project"
	"ecodesign/internal/report"
)

func (a *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if a.projects == nil {
		writeError(w, http.StatusServiceUnavailable, "project storage not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := a.projects.List(r.Context(), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": records})
}

func (a *App) handleGetProject(w http.ResponseWriter, r *http.Request) {
	record, ok := a.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *App) handleProjectReport(w http.ResponseWriter, r *http.Request) {
	record, ok := a.loadProject(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(record))
}

func (a *App) handleClearProjects(w http.ResponseWriter, r *http.Request) {
	if a.projects == nil {
		writeError(w, http.StatusServiceUnavailable, "project storage not configured")
		return
	}

	deleted, err := a.projects.Clear(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// loadProject resolves the {id} route parameter and fetches the record,
// writing the error response itself when anything goes wrong.
func (a *App) loadProject(w http.ResponseWriter, r *http.Request) (*project.Record, bool) {
	if a.projects == nil {
		writeError(w, http.StatusServiceUnavailable, "project storage not configured")
		return nil, false
	}

	id, err := core.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	record, err := a.projects.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return nil, false
	}
	return record, true
}
