package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/forum-service/internal/domain"
)

// QuestionFilter captures listing parameters.
type QuestionFilter struct {
	Title  string
	Limit  int
	Offset int
}

// QuestionRepository encapsulates question persistence, including the
// atomic view-set mutation.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	Update(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	ListWithFilter(ctx context.Context, filter QuestionFilter) ([]domain.Question, error)
	Delete(ctx context.Context, id int64) error
	ReplaceTags(ctx context.Context, questionID int64, tagIDs []int64) error
	RegisterUserView(ctx context.Context, questionID, userID int64) (bool, error)
	RegisterSessionView(ctx context.Context, questionID int64, sessionID string) (bool, error)
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository instantiates repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

const questionColumns = `
        q.id, q.author_id, q.title, q.description, q.views, q.created_at, q.updated_at,
        COALESCE((SELECT array_agg(t.name ORDER BY t.name)
                  FROM question_tags qt JOIN tags t ON t.id = qt.tag_id
                  WHERE qt.question_id = q.id), '{}')`

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	const query = `
        INSERT INTO questions (author_id, title, description)
        VALUES ($1, $2, $3)
        RETURNING id, views, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		question.AuthorID,
		question.Title,
		question.Description,
	).Scan(&question.ID, &question.Views, &question.CreatedAt, &question.UpdatedAt)
}

func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	const query = `
        UPDATE questions SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, question.Title, question.Description, question.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q WHERE q.id=$1`

	var question domain.Question
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&question.ID,
		&question.AuthorID,
		&question.Title,
		&question.Description,
		&question.Views,
		&question.CreatedAt,
		&question.UpdatedAt,
		&question.Tags,
	); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListWithFilter(ctx context.Context, filter QuestionFilter) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q`
	args := []any{}
	if filter.Title != "" {
		query += ` WHERE q.title ILIKE '%' || $1 || '%'`
		args = append(args, filter.Title)
	}
	query += ` ORDER BY q.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.AuthorID,
			&question.Title,
			&question.Description,
			&question.Views,
			&question.CreatedAt,
			&question.UpdatedAt,
			&question.Tags,
		); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *questionRepository) ReplaceTags(ctx context.Context, questionID int64, tagIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM question_tags WHERE question_id=$1`, questionID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO question_tags (question_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			questionID, tagID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// RegisterUserView inserts the user into the question's viewer set and bumps
// the counter in one statement, so racing requests cannot double-count. The
// returned bool reports whether the view was new.
func (r *questionRepository) RegisterUserView(ctx context.Context, questionID, userID int64) (bool, error) {
	const query = `
        WITH ins AS (
            INSERT INTO question_viewed_by_users (question_id, user_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING
            RETURNING 1
        )
        UPDATE questions SET views = views + 1
        WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)`

	cmd, err := r.pool.Exec(ctx, query, questionID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// RegisterSessionView is the anonymous-viewer counterpart of RegisterUserView.
func (r *questionRepository) RegisterSessionView(ctx context.Context, questionID int64, sessionID string) (bool, error) {
	const query = `
        WITH ins AS (
            INSERT INTO question_viewed_by (question_id, session_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING
            RETURNING 1
        )
        UPDATE questions SET views = views + 1
        WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)`

	cmd, err := r.pool.Exec(ctx, query, questionID, sessionID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
