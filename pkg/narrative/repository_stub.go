package narrative

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu         sync.Mutex
	narratives map[string][]Narrative
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{narratives: map[string][]Narrative{}}
}

func (s *RepositoryStub) Store(ctx context.Context, narrative Narrative) (Narrative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.narratives[narrative.ProjectId] = append(s.narratives[narrative.ProjectId], narrative)
	return narrative, nil
}

func (s *RepositoryStub) GetLatest(ctx context.Context, projectId string) (Narrative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest Narrative
	found := false
	for _, n := range s.narratives[projectId] {
		if !found || !n.GeneratedAt.Before(latest.GeneratedAt) {
			latest = n
			found = true
		}
	}
	if !found {
		return Narrative{}, ErrNarrativeNotFound
	}
	return latest, nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.narratives = map[string][]Narrative{}
}
