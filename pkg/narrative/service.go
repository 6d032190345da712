package narrative

import "context"

type Service interface {
	GetLatest(ctx context.Context, projectId string) (Narrative, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetLatest(ctx context.Context, projectId string) (Narrative, error) {
	return s.repo.GetLatest(ctx, projectId)
}
