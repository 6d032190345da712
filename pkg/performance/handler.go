package performance

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmsuite/perfmetrics/internal/rest"
	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
	log "github.com/sirupsen/logrus"
)

type KpiResultDTO struct {
	OverallProgress          float64 `json:"overallProgress"`
	PlannedDuration          int     `json:"plannedDuration"`
	PercentDurationElapsed   float64 `json:"percentDurationElapsed"`
	BudgetAtCompletion       float64 `json:"budgetAtCompletion"`
	PlannedValue             float64 `json:"plannedValue"`
	EarnedValue              float64 `json:"earnedValue"`
	ActualCost               float64 `json:"actualCost"`
	ScheduleVariance         float64 `json:"scheduleVariance"`
	CostVariance             float64 `json:"costVariance"`
	SchedulePerformanceIndex float64 `json:"schedulePerformanceIndex"`
	CostPerformanceIndex     float64 `json:"costPerformanceIndex"`
	EstimateAtCompletion     float64 `json:"estimateAtCompletion"`
	EstimateToComplete       float64 `json:"estimateToComplete"`
	VarianceAtCompletion     float64 `json:"varianceAtCompletion"`
	Status                   string  `json:"status"`
}

type SCurvePointDTO struct {
	Day     int     `json:"day"`
	Date    string  `json:"date"`
	Planned float64 `json:"planned"`
	Actual  float64 `json:"actual"`
}

type SCurveDTO struct {
	Points    []SCurvePointDTO `json:"points"`
	TotalDays int              `json:"totalDays"`
}

type ReportDTO struct {
	ProjectId    string       `json:"projectId,omitempty"`
	ProjectName  string       `json:"projectName,omitempty"`
	Kpis         KpiResultDTO `json:"kpis"`
	SCurve       SCurveDTO    `json:"sCurve"`
	CalculatedAt time.Time    `json:"calculatedAt"`
}

type PortfolioEntryDTO struct {
	ProjectId   string       `json:"projectId"`
	ProjectName string       `json:"projectName"`
	Kpis        KpiResultDTO `json:"kpis"`
}

type Handler struct {
	service        Service
	csvRenderer    SCurveRenderer
	reportRenderer *TextReportRenderer
}

func NewHandler(service Service, csvRenderer SCurveRenderer, reportRenderer *TextReportRenderer) *Handler {
	return &Handler{service, csvRenderer, reportRenderer}
}

// Evaluate godoc
// @Summary Compute KPIs and the S-curve of an ad-hoc schedule and budget
// @Tags Performance
// @Accept json
// @Produce json
// @Param snapshot body project.SnapshotDTO true "Schedule and budget"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/performance/evaluate [post]
func (handler *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Evaluating ad-hoc snapshot")
	var snapshot project.SnapshotDTO
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	tasks, items, err := project.ParseSnapshot(snapshot)
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}
	report, err := handler.service.Evaluate(r.Context(), tasks, items)
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ReportToDTO(report))
}

// GetKpis godoc
// @Summary Earned value KPIs of a project as of today
// @Tags Performance
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} KpiResultDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId}/kpi [get]
func (handler *Handler) GetKpis(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	kpis, err := handler.service.GetKpis(r.Context(), projectId)
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, KpisToDTO(kpis))
}

// GetSCurve godoc
// @Summary Day-by-day planned and actual cumulative progress
// @Tags Performance
// @Produce json,text/csv
// @Param projectId path string true "Project ID"
// @Success 200 {object} SCurveDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId}/scurve [get]
func (handler *Handler) GetSCurve(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	curve, err := handler.service.GetSCurve(r.Context(), projectId)
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}

	if accepts(r, "text/csv") {
		csv, err := handler.csvRenderer.RenderSCurve(curve)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, SCurveToDTO(curve))
}

// GetReport godoc
// @Summary KPIs and S-curve of a project; also triggers narrative generation
// @Tags Performance
// @Produce json,text/plain
// @Param projectId path string true "Project ID"
// @Success 200 {object} ReportDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/project/{projectId}/report [get]
func (handler *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	report, err := handler.service.GetReport(r.Context(), projectId)
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}

	if accepts(r, "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(handler.reportRenderer.RenderReport(report))); err != nil {
			log.Errorf("failed to write report: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, ReportToDTO(report))
}

// GetPortfolio godoc
// @Summary KPIs of every project
// @Tags Performance
// @Produce json
// @Success 200 {array} PortfolioEntryDTO
// @Router /api/portfolio/kpi [get]
func (handler *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	entries, err := handler.service.GetPortfolio(r.Context())
	if err != nil {
		project.WriteServiceError(w, err)
		return
	}
	entriesDTO := make([]PortfolioEntryDTO, 0, len(entries))
	for _, e := range entries {
		entriesDTO = append(entriesDTO, PortfolioEntryDTO{
			ProjectId:   e.ProjectId,
			ProjectName: e.ProjectName,
			Kpis:        KpisToDTO(e.Kpis),
		})
	}
	rest.WriteJSON(w, http.StatusOK, entriesDTO)
}

func accepts(r *http.Request, mediaType string) bool {
	return strings.Contains(r.Header.Get("Accept"), mediaType)
}

func KpisToDTO(k KpiResult) KpiResultDTO {
	return KpiResultDTO{
		OverallProgress:          k.OverallProgress,
		PlannedDuration:          k.PlannedDuration,
		PercentDurationElapsed:   k.PercentDurationElapsed,
		BudgetAtCompletion:       k.BudgetAtCompletion,
		PlannedValue:             k.PlannedValue,
		EarnedValue:              k.EarnedValue,
		ActualCost:               k.ActualCost,
		ScheduleVariance:         k.ScheduleVariance,
		CostVariance:             k.CostVariance,
		SchedulePerformanceIndex: k.SchedulePerformanceIndex,
		CostPerformanceIndex:     k.CostPerformanceIndex,
		EstimateAtCompletion:     k.EstimateAtCompletion,
		EstimateToComplete:       k.EstimateToComplete,
		VarianceAtCompletion:     k.VarianceAtCompletion,
		Status:                   string(k.Status),
	}
}

func SCurveToDTO(curve SCurve) SCurveDTO {
	points := make([]SCurvePointDTO, 0, len(curve.Points))
	for _, p := range curve.Points {
		points = append(points, SCurvePointDTO{
			Day:     p.Day,
			Date:    utils.FormatDate(p.Date),
			Planned: p.Planned,
			Actual:  p.Actual,
		})
	}
	return SCurveDTO{Points: points, TotalDays: curve.TotalDays}
}

func ReportToDTO(report Report) ReportDTO {
	return ReportDTO{
		ProjectId:    report.ProjectId,
		ProjectName:  report.ProjectName,
		Kpis:         KpisToDTO(report.Kpis),
		SCurve:       SCurveToDTO(report.Curve),
		CalculatedAt: report.CalculatedAt,
	}
}
