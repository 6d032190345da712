package performance

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmsuite/perfmetrics/internal/event_bus"
	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultPortfolioConcurrency bounds how many projects are loaded at once for the portfolio view.
const DefaultPortfolioConcurrency = 4

type ProjectReader interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	GetProject(ctx context.Context, projectId string) (project.Project, error)
}

type Service interface {
	Evaluate(ctx context.Context, tasks []project.ScheduleTask, items []project.BudgetItem) (Report, error)
	GetKpis(ctx context.Context, projectId string) (KpiResult, error)
	GetSCurve(ctx context.Context, projectId string) (SCurve, error)
	GetReport(ctx context.Context, projectId string) (Report, error)
	GetPortfolio(ctx context.Context) ([]PortfolioEntry, error)
}

type ServiceImpl struct {
	projects    ProjectReader
	calculator  *Calculator
	builder     *Builder
	renderer    *TextReportRenderer
	eventBus    *event_bus.EventBus
	clock       utils.Clock
	concurrency int
}

func NewService(
	projects ProjectReader,
	calculator *Calculator,
	builder *Builder,
	renderer *TextReportRenderer,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
	concurrency int,
) *ServiceImpl {
	if concurrency < 1 {
		concurrency = DefaultPortfolioConcurrency
	}
	return &ServiceImpl{
		projects:    projects,
		calculator:  calculator,
		builder:     builder,
		renderer:    renderer,
		eventBus:    eventBus,
		clock:       clock,
		concurrency: concurrency,
	}
}

// Evaluate computes a report for an ad-hoc snapshot that is not stored. Nothing is published.
func (s *ServiceImpl) Evaluate(ctx context.Context, tasks []project.ScheduleTask, items []project.BudgetItem) (Report, error) {
	if err := project.Validate(tasks, items); err != nil {
		return Report{}, err
	}
	return s.report(project.Project{Tasks: tasks, BudgetItems: items}), nil
}

func (s *ServiceImpl) GetKpis(ctx context.Context, projectId string) (KpiResult, error) {
	p, err := s.projects.GetProject(ctx, projectId)
	if err != nil {
		return KpiResult{}, err
	}
	return s.calculator.CalculateKpis(p.Tasks, p.BudgetItems), nil
}

func (s *ServiceImpl) GetSCurve(ctx context.Context, projectId string) (SCurve, error) {
	p, err := s.projects.GetProject(ctx, projectId)
	if err != nil {
		return SCurve{}, err
	}
	return s.builder.CalculateSCurveData(p.Tasks), nil
}

// GetReport computes KPIs and the S-curve of a stored project and announces the result on the event bus.
// A failing subscriber never fails the report.
func (s *ServiceImpl) GetReport(ctx context.Context, projectId string) (Report, error) {
	p, err := s.projects.GetProject(ctx, projectId)
	if err != nil {
		return Report{}, err
	}
	report := s.report(p)

	if s.eventBus != nil {
		err = s.eventBus.Publish(event_bus.NewEvent(
			ctx,
			event_bus.PerformanceReportCalculatedType,
			event_bus.PerformanceReportCalculated{
				ProjectId:    report.ProjectId,
				ProjectName:  report.ProjectName,
				Summary:      s.renderer.RenderReport(report),
				CalculatedAt: report.CalculatedAt,
			},
		))
		if err != nil {
			log.Warnf("failed to publish report of project %s: %v", projectId, err)
		}
	}
	return report, nil
}

// GetPortfolio computes the KPIs of every stored project, loading several projects concurrently.
// Projects deleted between listing and loading are left out.
func (s *ServiceImpl) GetPortfolio(ctx context.Context) ([]PortfolioEntry, error) {
	headers, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]*PortfolioEntry, len(headers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, header := range headers {
		g.Go(func() error {
			p, err := s.projects.GetProject(gctx, header.Id)
			if errors.Is(err, project.ErrProjectNotFound) {
				log.Debugf("project %s disappeared while computing the portfolio", header.Id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("project %s: %w", header.Id, err)
			}
			loaded[i] = &PortfolioEntry{
				ProjectId:   p.Id,
				ProjectName: p.Name,
				Kpis:        s.calculator.CalculateKpis(p.Tasks, p.BudgetItems),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]PortfolioEntry, 0, len(loaded))
	for _, e := range loaded {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	log.Debugf("computed portfolio KPIs for %d projects", len(entries))
	return entries, nil
}

func (s *ServiceImpl) report(p project.Project) Report {
	return Report{
		ProjectId:    p.Id,
		ProjectName:  p.Name,
		Kpis:         s.calculator.CalculateKpis(p.Tasks, p.BudgetItems),
		Curve:        s.builder.CalculateSCurveData(p.Tasks),
		CalculatedAt: s.clock.Now(),
	}
}
