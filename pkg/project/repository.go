package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pmsuite/perfmetrics/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, projectId string) (Project, error)
	CreateProject(ctx context.Context, project Project) (Project, error)
	UpdateProject(ctx context.Context, project Project) (Project, error)
	DeleteProject(ctx context.Context, projectId string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// ListProjects returns project headers only; tasks and budget items are loaded by GetProject.
func (r RepositoryImpl) ListProjects(ctx context.Context) ([]Project, error) {
	query := `SELECT id, name, created_at, updated_at FROM project ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Id, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return projects, nil
}

func (r RepositoryImpl) GetProject(ctx context.Context, projectId string) (Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Project{}, err
	}
	defer tx.Rollback(ctx)

	var p Project
	query := `SELECT id, name, created_at, updated_at FROM project WHERE id = $1`
	err = tx.QueryRow(ctx, query, projectId).Scan(&p.Id, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		err := fmt.Errorf("could not query project: %w", err)
		log.Error(err)
		return Project{}, err
	}

	p.Tasks, err = r.getTasks(ctx, tx, projectId)
	if err != nil {
		return Project{}, err
	}
	p.BudgetItems, err = r.getBudgetItems(ctx, tx, projectId)
	if err != nil {
		return Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return p, nil
}

func (r RepositoryImpl) getTasks(ctx context.Context, tx pgx.Tx, projectId string) ([]ScheduleTask, error) {
	query := `SELECT task_id, name, start_date, end_date, progress, type, parent_id
			  FROM schedule_task WHERE project_id = $1 ORDER BY position`
	rows, err := tx.Query(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query schedule tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	tasks := make([]ScheduleTask, 0)
	for rows.Next() {
		var (
			t        ScheduleTask
			name     sql.NullString
			taskType string
			parentId sql.NullString
		)
		if err := rows.Scan(&t.Id, &name, &t.Start, &t.End, &t.Progress, &taskType, &parentId); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		t.Name = name.String
		t.Type = TaskType(taskType)
		t.Project = parentId.String
		t.Start = utils.NormalizeToNoon(t.Start)
		t.End = utils.NormalizeToNoon(t.End)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tasks, nil
}

func (r RepositoryImpl) getBudgetItems(ctx context.Context, tx pgx.Tx, projectId string) ([]BudgetItem, error) {
	query := `SELECT category, labor_cost, materials_cost, contingency_percent
			  FROM budget_item WHERE project_id = $1 ORDER BY position`
	rows, err := tx.Query(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query budget items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	items := make([]BudgetItem, 0)
	for rows.Next() {
		var (
			b        BudgetItem
			category sql.NullString
		)
		if err := rows.Scan(&category, &b.LaborCost, &b.MaterialsCost, &b.ContingencyPercent); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		b.Category = category.String
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r RepositoryImpl) CreateProject(ctx context.Context, project Project) (Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Project{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO project (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err = tx.Exec(ctx, query, project.Id, project.Name, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Project{}, err
	}
	if err := r.storeContent(ctx, tx, project); err != nil {
		return Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return project, nil
}

// UpdateProject replaces the whole schedule and budget of the project.
func (r RepositoryImpl) UpdateProject(ctx context.Context, project Project) (Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Project{}, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE project SET name = $1, updated_at = $2 WHERE id = $3 RETURNING created_at`
	err = tx.QueryRow(ctx, query, project.Name, project.UpdatedAt, project.Id).Scan(&project.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Project{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_task WHERE project_id = $1`, project.Id); err != nil {
		err := fmt.Errorf("could not delete schedule tasks: %w", err)
		log.Error(err)
		return Project{}, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM budget_item WHERE project_id = $1`, project.Id); err != nil {
		err := fmt.Errorf("could not delete budget items: %w", err)
		log.Error(err)
		return Project{}, err
	}
	if err := r.storeContent(ctx, tx, project); err != nil {
		return Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return project, nil
}

func (r RepositoryImpl) storeContent(ctx context.Context, tx pgx.Tx, project Project) error {
	batch := &pgx.Batch{}
	for i, t := range project.Tasks {
		batch.Queue(`INSERT INTO schedule_task (
						project_id, position, task_id, name, start_date, end_date, progress, type, parent_id
					) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			project.Id,
			i,
			t.Id,
			nullString(t.Name),
			dateOnly(t.Start),
			dateOnly(t.End),
			t.Progress,
			string(t.Type),
			nullString(t.Project),
		)
	}
	for i, b := range project.BudgetItems {
		batch.Queue(`INSERT INTO budget_item (
						project_id, position, category, labor_cost, materials_cost, contingency_percent
					) VALUES ($1, $2, $3, $4, $5, $6)`,
			project.Id,
			i,
			nullString(b.Category),
			b.LaborCost,
			b.MaterialsCost,
			b.ContingencyPercent,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		err := fmt.Errorf("could not store project content: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r RepositoryImpl) DeleteProject(ctx context.Context, projectId string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM project WHERE id = $1`, projectId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
