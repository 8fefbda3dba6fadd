package repository

import (
	"context"

	"docqa/internal/model"
)

// QuestionRepository defines data access for questions. Questions are created
// pending and receive exactly one terminal update from the background answer
// engine; they are never deleted.
type QuestionRepository interface {
	// Create inserts a new question record with status pending.
	Create(ctx context.Context, q *model.Question) (*model.Question, error)

	// FindByID returns a question by its ID.
	FindByID(ctx context.Context, id string) (*model.Question, error)

	// ListByDocument returns the questions of a document, newest first.
	ListByDocument(ctx context.Context, documentID string, pq PageQuery) (*PageResult[model.Question], error)

	// UpdateStatusAndAnswer sets the status unconditionally and the answer only
	// when a non-empty value is supplied, in one committed statement. It returns
	// the updated question, or sql.ErrNoRows if the id does not resolve.
	UpdateStatusAndAnswer(ctx context.Context, id string, status model.QuestionStatus, answer string) (*model.Question, error)
}
