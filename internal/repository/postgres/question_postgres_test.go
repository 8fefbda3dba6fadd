package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docqa/internal/model"
	"docqa/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var questionColumns = []string{"id", "document_id", "question_text", "answer", "status", "created_at", "updated_at"}

func TestQuestionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	q := &model.Question{
		ID:           "question-uuid",
		DocumentID:   "document-uuid",
		QuestionText: "What is a cat?",
		Status:       model.QuestionStatusPending,
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows(questionColumns).
		AddRow(q.ID, q.DocumentID, q.QuestionText, nil, string(q.Status), now, nil)

	mock.ExpectQuery("INSERT INTO questions").
		WithArgs(q.ID, q.DocumentID, q.QuestionText, q.Status, q.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, q)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, q.ID, result.ID)
	assert.Equal(t, model.QuestionStatusPending, result.Status)
	assert.Nil(t, result.Answer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	t.Run("found pending", func(t *testing.T) {
		rows := sqlmock.NewRows(questionColumns).
			AddRow("question-id", "document-id", "What is a cat?", nil, "pending", time.Now(), nil)

		mock.ExpectQuery("SELECT (.+) FROM questions WHERE id = ?").
			WithArgs("question-id").
			WillReturnRows(rows)

		q, err := repo.FindByID(ctx, "question-id")

		assert.NoError(t, err)
		assert.NotNil(t, q)
		assert.Equal(t, model.QuestionStatusPending, q.Status)
		assert.Nil(t, q.Answer)
	})

	t.Run("found answered", func(t *testing.T) {
		answered := time.Now()
		rows := sqlmock.NewRows(questionColumns).
			AddRow("question-id", "document-id", "What is a cat?",
				"This is a generated answer to your question: 'What is a cat?'",
				"answered", time.Now(), answered)

		mock.ExpectQuery("SELECT (.+) FROM questions WHERE id = ?").
			WithArgs("question-id").
			WillReturnRows(rows)

		q, err := repo.FindByID(ctx, "question-id")

		assert.NoError(t, err)
		assert.Equal(t, model.QuestionStatusAnswered, q.Status)
		assert.NotNil(t, q.Answer)
		assert.Contains(t, *q.Answer, "What is a cat?")
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM questions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		q, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, q)
	})
}

func TestQuestionPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM questions WHERE document_id = ?").
		WithArgs("document-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(questionColumns).
		AddRow("q2", "document-id", "Do cats purr?", nil, "pending", time.Now(), nil).
		AddRow("q1", "document-id", "What is a cat?", "an answer", "answered", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM questions WHERE document_id = (.+) ORDER BY").
		WithArgs("document-id", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByDocument(ctx, "document-id", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionPostgres_UpdateStatusAndAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	t.Run("answered with answer", func(t *testing.T) {
		updated := time.Now()
		rows := sqlmock.NewRows(questionColumns).
			AddRow("question-id", "document-id", "What is a cat?", "the answer", "answered", time.Now(), updated)

		mock.ExpectQuery("UPDATE questions").
			WithArgs("question-id", model.QuestionStatusAnswered, "the answer").
			WillReturnRows(rows)

		q, err := repo.UpdateStatusAndAnswer(ctx, "question-id", model.QuestionStatusAnswered, "the answer")

		assert.NoError(t, err)
		assert.Equal(t, model.QuestionStatusAnswered, q.Status)
		assert.Equal(t, "the answer", *q.Answer)
		assert.NotNil(t, q.UpdatedAt)
	})

	t.Run("empty answer keeps previous value", func(t *testing.T) {
		// COALESCE(NULLIF($3, ''), answer) leaves the column untouched.
		rows := sqlmock.NewRows(questionColumns).
			AddRow("question-id", "document-id", "What is a cat?", nil, "failed", time.Now(), time.Now())

		mock.ExpectQuery("UPDATE questions").
			WithArgs("question-id", model.QuestionStatusFailed, "").
			WillReturnRows(rows)

		q, err := repo.UpdateStatusAndAnswer(ctx, "question-id", model.QuestionStatusFailed, "")

		assert.NoError(t, err)
		assert.Equal(t, model.QuestionStatusFailed, q.Status)
		assert.Nil(t, q.Answer)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE questions").
			WithArgs("missing", model.QuestionStatusAnswered, "x").
			WillReturnError(sql.ErrNoRows)

		q, err := repo.UpdateStatusAndAnswer(ctx, "missing", model.QuestionStatusAnswered, "x")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, q)
	})
}
