package project

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pmsuite/perfmetrics/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, projectId string) (Project, error)
	CreateProject(ctx context.Context, project Project) (Project, error)
	UpdateProject(ctx context.Context, project Project) (Project, error)
	DeleteProject(ctx context.Context, projectId string) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) ListProjects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *ServiceImpl) GetProject(ctx context.Context, projectId string) (Project, error) {
	return s.repo.GetProject(ctx, projectId)
}

func (s *ServiceImpl) CreateProject(ctx context.Context, project Project) (Project, error) {
	if err := validateProject(project); err != nil {
		return Project{}, err
	}
	now := s.clock.Now()
	project.Id = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now

	created, err := s.repo.CreateProject(ctx, project)
	if err != nil {
		return Project{}, err
	}
	log.Debugf("created project %s with %d tasks and %d budget items", created.Id, len(created.Tasks), len(created.BudgetItems))
	return created, nil
}

func (s *ServiceImpl) UpdateProject(ctx context.Context, project Project) (Project, error) {
	if err := validateProject(project); err != nil {
		return Project{}, err
	}
	project.UpdatedAt = s.clock.Now()
	return s.repo.UpdateProject(ctx, project)
}

func (s *ServiceImpl) DeleteProject(ctx context.Context, projectId string) (bool, error) {
	deleted, err := s.repo.DeleteProject(ctx, projectId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("project %s not deleted, probably because it does not exist", projectId)
	}
	return deleted, nil
}

func validateProject(project Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return newValidationError("name", "", "is required")
	}
	return Validate(project.Tasks, project.BudgetItems)
}
