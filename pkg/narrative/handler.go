package narrative

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmsuite/perfmetrics/internal/rest"
	log "github.com/sirupsen/logrus"
)

type NarrativeDTO struct {
	Id          string    `json:"id"`
	ProjectId   string    `json:"projectId"`
	Model       string    `json:"model"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetNarrative godoc
// @Summary Latest generated narrative of a project
// @Tags Narrative
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} NarrativeDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId}/narrative [get]
func (handler *Handler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	n, err := handler.service.GetLatest(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrNarrativeNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error(), projectId)
			return
		}
		log.Errorf("failed to get narrative: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, NarrativeToDTO(n))
}

func NarrativeToDTO(n Narrative) NarrativeDTO {
	return NarrativeDTO{
		Id:          n.Id,
		ProjectId:   n.ProjectId,
		Model:       n.Model,
		Text:        n.Text,
		GeneratedAt: n.GeneratedAt,
	}
}
