package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pmsuite/perfmetrics/internal/config"
	"github.com/pmsuite/perfmetrics/internal/event_bus"
	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/narrative"
	"github.com/pmsuite/perfmetrics/pkg/performance"
	"github.com/pmsuite/perfmetrics/pkg/project"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	ProjectRepo    project.Repository
	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	Calculator         *performance.Calculator
	CurveBuilder       *performance.Builder
	CsvSCurveRenderer  *performance.CsvSCurveRendererImpl
	TextReportRenderer *performance.TextReportRenderer
	PerformanceService *performance.ServiceImpl
	PerformanceHandler *performance.Handler

	NarrativeRepo       narrative.Repository
	Summarizer          narrative.Summarizer
	NarrativeSubscriber *narrative.Subscriber
	NarrativeService    *narrative.ServiceImpl
	NarrativeHandler    *narrative.Handler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo, deps.Clock)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	curveMode, err := performance.ParseCurveMode(cfg.Metrics.CurveMode)
	if err != nil {
		return nil, err
	}
	deps.Calculator = performance.NewCalculator(
		deps.Clock,
		performance.NewRatioCostProvider(cfg.Metrics.ActualCostRatio),
		cfg.Metrics.Precision,
	)
	deps.CurveBuilder = performance.NewBuilder(curveMode)
	deps.CsvSCurveRenderer = performance.NewCsvSCurveRenderer()
	deps.TextReportRenderer = performance.NewTextReportRenderer(cfg.Narrative.SampleSize, cfg.Metrics.Precision)
	deps.PerformanceService = performance.NewService(
		deps.ProjectService,
		deps.Calculator,
		deps.CurveBuilder,
		deps.TextReportRenderer,
		deps.EventBus,
		deps.Clock,
		cfg.Portfolio.Concurrency,
	)
	deps.PerformanceHandler = performance.NewHandler(deps.PerformanceService, deps.CsvSCurveRenderer, deps.TextReportRenderer)

	deps.NarrativeRepo = narrative.NewRepository(db)
	deps.Summarizer, err = newSummarizer(ctx, cfg.Narrative)
	if err != nil {
		return nil, err
	}
	deps.NarrativeSubscriber = narrative.NewSubscriber(
		deps.Summarizer,
		deps.NarrativeRepo,
		deps.Clock,
		time.Duration(cfg.Narrative.TimeoutSec)*time.Second,
	)
	if cfg.Narrative.Enabled {
		deps.unsubscribe = append(deps.unsubscribe, deps.NarrativeSubscriber.Register(deps.EventBus))
	}
	deps.NarrativeService = narrative.NewService(deps.NarrativeRepo)
	deps.NarrativeHandler = narrative.NewHandler(deps.NarrativeService)

	return deps, nil
}

func newSummarizer(ctx context.Context, cfg config.Narrative) (narrative.Summarizer, error) {
	if !cfg.Enabled {
		log.Info("Narrative generation disabled")
		return narrative.NewStaticSummarizer(""), nil
	}
	log.Infof("Narrative generation enabled with model %s", cfg.Model)
	return narrative.NewGeminiSummarizer(ctx, cfg.ApiKey, cfg.Model)
}

// Close detaches the event bus subscribers.
func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}
