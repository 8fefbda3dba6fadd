package postgres

import (
	"context"
	"database/sql"

	"docqa/internal/model"
	"docqa/internal/repository"
)

// QuestionPostgres is a PostgreSQL implementation of repository.QuestionRepository.
type QuestionPostgres struct {
	db *sql.DB
}

// NewQuestionPostgres creates a new QuestionPostgres repository.
func NewQuestionPostgres(db *sql.DB) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

var _ repository.QuestionRepository = (*QuestionPostgres)(nil)

// Create inserts a new question row. The status column is written from the
// model, which the service layer always sets to pending on creation.
func (r *QuestionPostgres) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	const query = `
		INSERT INTO questions (id, document_id, question_text, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, question_text, answer, status, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, query,
		q.ID,
		q.DocumentID,
		q.QuestionText,
		q.Status,
		q.CreatedAt,
	)
	return scanQuestion(row)
}

// FindByID fetches a single question by its ID.
func (r *QuestionPostgres) FindByID(ctx context.Context, id string) (*model.Question, error) {
	const query = `
		SELECT id, document_id, question_text, answer, status, created_at, updated_at
		FROM questions
		WHERE id = $1
	`
	return scanQuestion(r.db.QueryRowContext(ctx, query, id))
}

// ListByDocument returns questions belonging to one document, newest first.
func (r *QuestionPostgres) ListByDocument(ctx context.Context, documentID string, pq repository.PageQuery) (*repository.PageResult[model.Question], error) {
	const qCount = `SELECT COUNT(*) FROM questions WHERE document_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, documentID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, document_id, question_text, answer, status, created_at, updated_at
		FROM questions
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, documentID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID,
			&q.DocumentID,
			&q.QuestionText,
			&q.Answer,
			&q.Status,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Question]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateStatusAndAnswer writes the terminal state of a question in a single
// statement: status and updated_at are always set, the answer column only when
// a non-empty value is supplied (NULLIF keeps the previous value otherwise).
func (r *QuestionPostgres) UpdateStatusAndAnswer(ctx context.Context, id string, status model.QuestionStatus, answer string) (*model.Question, error) {
	const query = `
		UPDATE questions
		SET status = $2,
		    answer = COALESCE(NULLIF($3, ''), answer),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, document_id, question_text, answer, status, created_at, updated_at
	`
	return scanQuestion(r.db.QueryRowContext(ctx, query, id, status, answer))
}

func scanQuestion(row *sql.Row) (*model.Question, error) {
	var q model.Question
	if err := row.Scan(
		&q.ID,
		&q.DocumentID,
		&q.QuestionText,
		&q.Answer,
		&q.Status,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}
