package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"persona-fit/internal/domain"
)

// QuestionRepository define el contrato de lectura del banco de preguntas.
// List siempre consulta el store: no hay cache en proceso que invalidar.
type QuestionRepository interface {
	List(ctx context.Context) ([]domain.Question, error)
	Seed(ctx context.Context, questions []domain.Question) error
}

// PgQuestionRepository implementa QuestionRepository usando pgxpool.
type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

func (r *PgQuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	const query = `
		SELECT id, text, trait, is_reverse, position
		FROM questions
		ORDER BY position, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.NewStoreError("list questions", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Trait, &q.IsReverse, &q.Position); err != nil {
			return nil, domain.NewStoreError("scan question", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("list questions", err)
	}
	return questions, nil
}

// Seed inserta o actualiza el banco completo. Idempotente por id.
func (r *PgQuestionRepository) Seed(ctx context.Context, questions []domain.Question) error {
	const query = `
		INSERT INTO questions (id, text, trait, is_reverse, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			text = EXCLUDED.text,
			trait = EXCLUDED.trait,
			is_reverse = EXCLUDED.is_reverse,
			position = EXCLUDED.position
	`
	for _, q := range questions {
		if _, err := r.pool.Exec(ctx, query, q.ID, q.Text, q.Trait, q.IsReverse, q.Position); err != nil {
			return domain.NewStoreError("seed question "+q.ID, err)
		}
	}
	return nil
}
