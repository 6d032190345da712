package narrative

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pmsuite/perfmetrics/internal/event_bus"
	"github.com/pmsuite/perfmetrics/internal/utils"
	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Subscriber turns every calculated report into a stored narrative. Generation runs in the background,
// so the request that produced the report never waits for the model.
type Subscriber struct {
	summarizer Summarizer
	repo       Repository
	clock      utils.Clock
	timeout    time.Duration
	wg         sync.WaitGroup
}

func NewSubscriber(summarizer Summarizer, repo Repository, clock utils.Clock, timeout time.Duration) *Subscriber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Subscriber{
		summarizer: summarizer,
		repo:       repo,
		clock:      clock,
		timeout:    timeout,
	}
}

func (s *Subscriber) Register(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.PerformanceReportCalculatedType, s.onReportCalculated)
}

func (s *Subscriber) onReportCalculated(e event_bus.EventT[event_bus.PerformanceReportCalculated]) error {
	// the request context ends with the response, the generation must outlive it
	ctx := context.WithoutCancel(e.Context())
	report := e.Data

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		if _, err := s.Generate(ctx, report); err != nil {
			log.Warnf("narrative for project %s not generated: %v", report.ProjectId, err)
		}
	}()
	return nil
}

// Generate asks the summarizer for a narrative of the report and stores it.
func (s *Subscriber) Generate(ctx context.Context, report event_bus.PerformanceReportCalculated) (Narrative, error) {
	prompt := BuildPrompt(report.ProjectName, report.Summary)
	text, err := s.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return Narrative{}, fmt.Errorf("summarize: %w", err)
	}

	stored, err := s.repo.Store(ctx, Narrative{
		Id:          uuid.NewString(),
		ProjectId:   report.ProjectId,
		Model:       s.summarizer.Model(),
		Prompt:      prompt,
		Text:        text,
		GeneratedAt: s.clock.Now(),
	})
	if err != nil {
		return Narrative{}, err
	}
	log.Debugf("stored narrative %s for project %s", stored.Id, stored.ProjectId)
	return stored, nil
}

// Wait blocks until every background generation started so far has finished.
func (s *Subscriber) Wait() {
	s.wg.Wait()
}
