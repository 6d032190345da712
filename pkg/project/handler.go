package project

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pmsuite/perfmetrics/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListProjects godoc
// @Summary List all projects
// @Tags Project
// @Produce json
// @Success 200 {array} ProjectDTO
// @Router /api/project [get]
func (handler *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing projects")
	projects, err := handler.service.ListProjects(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	projectsDTO := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		projectsDTO = append(projectsDTO, ProjectToDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, projectsDTO)
}

// CreateProject godoc
// @Summary Create a project from a schedule and budget snapshot
// @Tags Project
// @Accept json
// @Produce json
// @Param project body ProjectDTO true "Project"
// @Success 201 {object} ProjectDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/project [post]
func (handler *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")
	var projectDTO ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&projectDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	p, err := DTOToProject(projectDTO)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	created, err := handler.service.CreateProject(r.Context(), p)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ProjectToDTO(created))
}

// GetProject godoc
// @Summary Get a project with its schedule and budget
// @Tags Project
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} ProjectDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId} [get]
func (handler *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	p, err := handler.service.GetProject(r.Context(), projectId)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProjectToDTO(p))
}

// UpdateProject godoc
// @Summary Replace the schedule and budget of a project
// @Tags Project
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param project body ProjectDTO true "Project"
// @Success 200 {object} ProjectDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId} [put]
func (handler *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	var projectDTO ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&projectDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if projectDTO.Id != "" && projectDTO.Id != projectId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid project id in request body", "")
		return
	}
	projectDTO.Id = projectId

	p, err := DTOToProject(projectDTO)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	updated, err := handler.service.UpdateProject(r.Context(), p)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProjectToDTO(updated))
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags Project
// @Param projectId path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId} [delete]
func (handler *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	deleted, err := handler.service.DeleteProject(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, ErrProjectNotFound.Error(), projectId)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WriteServiceError maps validation errors to 400 and missing projects to 404.
func WriteServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid input", validationErr.Error())
	case errors.Is(err, ErrProjectNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	default:
		log.Errorf("request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
