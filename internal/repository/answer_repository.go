package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/forum-service/internal/domain"
)

// AnswerRepository encapsulates answer persistence.
type AnswerRepository interface {
	Create(ctx context.Context, answer *domain.Answer) error
	Update(ctx context.Context, answer *domain.Answer) error
	GetByID(ctx context.Context, id int64) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error)
	Delete(ctx context.Context, id int64) error
}

type answerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository instantiates repository.
func NewAnswerRepository(pool *pgxpool.Pool) AnswerRepository {
	return &answerRepository{pool: pool}
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	const query = `
        INSERT INTO answers (question_id, author_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		answer.QuestionID,
		answer.AuthorID,
		answer.Content,
	).Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)
}

func (r *answerRepository) Update(ctx context.Context, answer *domain.Answer) error {
	const query = `
        UPDATE answers SET content=$1, rating=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, answer.Content, answer.Rating, answer.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *answerRepository) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	const query = `
        SELECT id, question_id, author_id, content, rating, created_at, updated_at
        FROM answers WHERE id=$1`

	var answer domain.Answer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.AuthorID,
		&answer.Content,
		&answer.Rating,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	const query = `
        SELECT id, question_id, author_id, content, rating, created_at, updated_at
        FROM answers WHERE question_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var answer domain.Answer
		if err := rows.Scan(
			&answer.ID,
			&answer.QuestionID,
			&answer.AuthorID,
			&answer.Content,
			&answer.Rating,
			&answer.CreatedAt,
			&answer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}

func (r *answerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
