package project

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	projects map[string]Project
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{projects: map[string]Project{}}
}

func (s *RepositoryStub) ListProjects(ctx context.Context) ([]Project, error) {
	projects := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, Project{Id: p.Id, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].Id < projects[j].Id
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *RepositoryStub) GetProject(ctx context.Context, projectId string) (Project, error) {
	if p, exists := s.projects[projectId]; exists {
		return p, nil
	}
	return Project{}, ErrProjectNotFound
}

func (s *RepositoryStub) CreateProject(ctx context.Context, project Project) (Project, error) {
	s.projects[project.Id] = project
	return project, nil
}

func (s *RepositoryStub) UpdateProject(ctx context.Context, project Project) (Project, error) {
	existing, exists := s.projects[project.Id]
	if !exists {
		return Project{}, ErrProjectNotFound
	}
	project.CreatedAt = existing.CreatedAt
	s.projects[project.Id] = project
	return project, nil
}

func (s *RepositoryStub) DeleteProject(ctx context.Context, projectId string) (bool, error) {
	if _, exists := s.projects[projectId]; exists {
		delete(s.projects, projectId)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.projects = map[string]Project{}
}
