// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// ProjectHandler handles HTTP requests for project CRUD.
type ProjectHandler struct {
	svc          ports.ProjectService
	maxBodyBytes int64
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
// A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func NewProjectHandler(svc ports.ProjectService, maxBodyBytes int64) *ProjectHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &ProjectHandler{svc: svc, maxBodyBytes: maxBodyBytes}
}

// ListProjects handles GET /projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectListResponse(projects))
}

// GetProjectBySlug handles GET /projects/{slug}.
func (h *ProjectHandler) GetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(p))
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecord(w, r, h.maxBodyBytes)
	if !ok {
		return
	}

	created, err := h.svc.CreateProject(r.Context(), rec)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToProjectResponse(created))
}

// UpdateProject handles PUT /projects/{id}. The body replaces the project.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	rec, ok := decodeRecord(w, r, h.maxBodyBytes)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateProject(r.Context(), id, rec)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(updated))
}

// DeleteProject handles DELETE /projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteProject(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
