package narrative

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNarrativeNotFound = errors.New("narrative not found")

type Repository interface {
	Store(ctx context.Context, narrative Narrative) (Narrative, error)
	GetLatest(ctx context.Context, projectId string) (Narrative, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r RepositoryImpl) Store(ctx context.Context, narrative Narrative) (Narrative, error) {
	query := `INSERT INTO narrative (id, project_id, model, prompt, text, generated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		narrative.Id,
		narrative.ProjectId,
		narrative.Model,
		narrative.Prompt,
		narrative.Text,
		narrative.GeneratedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not store narrative: %w", err)
		log.Error(err)
		return Narrative{}, err
	}
	return narrative, nil
}

func (r RepositoryImpl) GetLatest(ctx context.Context, projectId string) (Narrative, error) {
	query := `SELECT id, project_id, model, prompt, text, generated_at
			  FROM narrative WHERE project_id = $1
			  ORDER BY generated_at DESC LIMIT 1`
	var n Narrative
	err := r.db.QueryRow(ctx, query, projectId).Scan(&n.Id, &n.ProjectId, &n.Model, &n.Prompt, &n.Text, &n.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Narrative{}, ErrNarrativeNotFound
		}
		err := fmt.Errorf("could not query narrative: %w", err)
		log.Error(err)
		return Narrative{}, err
	}
	return n, nil
}
