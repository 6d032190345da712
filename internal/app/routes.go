package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Performance
	r.HandleFunc("/api/performance/evaluate", deps.PerformanceHandler.Evaluate).Methods("POST")
	r.HandleFunc("/api/project/{projectId}/kpi", deps.PerformanceHandler.GetKpis).Methods("GET")
	r.HandleFunc("/api/project/{projectId}/scurve", deps.PerformanceHandler.GetSCurve).Methods("GET")
	r.HandleFunc("/api/project/{projectId}/report", deps.PerformanceHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/portfolio/kpi", deps.PerformanceHandler.GetPortfolio).Methods("GET")

	// Narrative
	r.HandleFunc("/api/project/{projectId}/narrative", deps.NarrativeHandler.GetNarrative).Methods("GET")
}
