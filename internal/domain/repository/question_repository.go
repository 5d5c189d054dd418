package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qa_platform/internal/common"
	"qa_platform/internal/domain/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	ListRecent(ctx context.Context, limit int) ([]model.Question, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (id, title, slug, body, tags, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, q.ID, q.Title, q.Slug, q.Body, q.Tags, q.UserID).
		Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `
        SELECT q.id, q.title, q.slug, q.body, q.tags, q.user_id,
               q.votes, q.answers, q.views, q.created_at,
               u.username, u.email
        FROM questions q
        LEFT JOIN users u ON q.user_id = u.id
        WHERE q.id = $1`

	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.Title, &q.Slug, &q.Body, &q.Tags, &q.UserID,
		&q.Votes, &q.Answers, &q.Views, &q.CreatedAt,
		&q.Username, &q.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) ListRecent(ctx context.Context, limit int) ([]model.Question, error) {
	query := `
        SELECT q.id, q.title, q.slug, q.body, q.tags, q.user_id,
               q.votes, q.answers, q.views, q.created_at,
               u.username, u.email
        FROM questions q
        LEFT JOIN users u ON q.user_id = u.id
        ORDER BY q.created_at DESC
        LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListRecent query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID, &q.Title, &q.Slug, &q.Body, &q.Tags, &q.UserID,
			&q.Votes, &q.Answers, &q.Views, &q.CreatedAt,
			&q.Username, &q.Email,
		); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListRecent scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListRecent rows.Err: %w", err)
	}

	return questions, nil
}
