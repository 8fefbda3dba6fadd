package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"docqa/internal/generation"
	"docqa/internal/model"
	"docqa/internal/repository"
	repoMocks "docqa/internal/repository/mocks"
	"docqa/internal/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQuestionService(
	docs *repoMocks.MockDocumentRepository,
	questions *repoMocks.MockQuestionRepository,
	queue task.QueueWriter,
) QuestionService {
	return NewQuestionService(docs, questions, generation.NewSimulated(0), queue, testLogger())
}

func TestQuestionService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path returns pending and schedules one task", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		docs.On("FindByID", ctx, "doc-id").
			Return(&model.Document{ID: "doc-id", Title: "Cats"}, nil)

		questions := new(repoMocks.MockQuestionRepository)
		questions.On("Create", ctx, mock.MatchedBy(func(q *model.Question) bool {
			return q.DocumentID == "doc-id" &&
				q.QuestionText == "What is a cat?" &&
				q.Status == model.QuestionStatusPending
		})).Return(&model.Question{
			ID:           "q-id",
			DocumentID:   "doc-id",
			QuestionText: "What is a cat?",
			Status:       model.QuestionStatusPending,
		}, nil)

		queue := task.NewQueue(1, testLogger())

		svc := newQuestionService(docs, questions, queue)
		q, err := svc.Submit(ctx, "doc-id", "What is a cat?")

		require.NoError(t, err)
		assert.Equal(t, model.QuestionStatusPending, q.Status)
		assert.Nil(t, q.Answer)

		// Exactly one background unit of work was scheduled.
		queue.Close()
		scheduled := 0
		for range queue.Chan() {
			scheduled++
		}
		assert.Equal(t, 1, scheduled)
		questions.AssertExpectations(t)
	})

	t.Run("nonexistent document yields not found and creates nothing", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		docs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		questions := new(repoMocks.MockQuestionRepository)
		queue := task.NewQueue(1, testLogger())

		svc := newQuestionService(docs, questions, queue)
		q, err := svc.Submit(ctx, "missing", "What is a cat?")

		assert.ErrorIs(t, err, ErrDocumentNotFound)
		assert.Nil(t, q)
		questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short question text is rejected before any lookup", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		questions := new(repoMocks.MockQuestionRepository)
		queue := task.NewQueue(1, testLogger())

		svc := newQuestionService(docs, questions, queue)
		q, err := svc.Submit(ctx, "doc-id", "Hm?")

		assert.ErrorIs(t, err, ErrQuestionTooShort)
		assert.Nil(t, q)
		docs.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("create failure", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		docs.On("FindByID", ctx, "doc-id").
			Return(&model.Document{ID: "doc-id"}, nil)

		questions := new(repoMocks.MockQuestionRepository)
		questions.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))

		queue := task.NewQueue(1, testLogger())

		svc := newQuestionService(docs, questions, queue)
		q, err := svc.Submit(ctx, "doc-id", "What is a cat?")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create question")
		assert.Nil(t, q)
	})

	t.Run("queue full", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		docs.On("FindByID", ctx, "doc-id").
			Return(&model.Document{ID: "doc-id"}, nil)

		questions := new(repoMocks.MockQuestionRepository)
		questions.On("Create", ctx, mock.Anything).
			Return(&model.Question{ID: "q-id", QuestionText: "What is a cat?", Status: model.QuestionStatusPending}, nil)

		queue := task.NewQueue(0, testLogger()) // zero capacity: always full

		svc := newQuestionService(docs, questions, queue)
		q, err := svc.Submit(ctx, "doc-id", "What is a cat?")

		require.Error(t, err)
		assert.ErrorIs(t, err, task.ErrQueueFull)
		assert.Nil(t, q)
	})
}

// TestQuestionService_SubmitThenProcess covers the full lifecycle: submit
// returns pending, the worker pool drains the queue, and the terminal write
// carries an answer embedding the question text.
func TestQuestionService_SubmitThenProcess(t *testing.T) {
	ctx := context.Background()

	docs := new(repoMocks.MockDocumentRepository)
	docs.On("FindByID", ctx, "doc-id").
		Return(&model.Document{ID: "doc-id"}, nil)

	questions := new(repoMocks.MockQuestionRepository)
	questions.On("Create", ctx, mock.Anything).
		Return(&model.Question{
			ID:           "q-id",
			DocumentID:   "doc-id",
			QuestionText: "What is a cat?",
			Status:       model.QuestionStatusPending,
		}, nil)

	terminal := make(chan string, 1)
	questions.On("UpdateStatusAndAnswer", mock.Anything, "q-id", model.QuestionStatusAnswered,
		mock.MatchedBy(func(answer string) bool {
			select {
			case terminal <- answer:
			default:
			}
			return true
		})).
		Return(&model.Question{ID: "q-id", Status: model.QuestionStatusAnswered}, nil)

	queue := task.NewQueue(1, testLogger())
	pool := task.NewWorkerPool(queue, task.WorkerPoolConfig{WorkerCount: 1}, testLogger(), nil)

	svc := newQuestionService(docs, questions, queue)
	q, err := svc.Submit(ctx, "doc-id", "What is a cat?")
	require.NoError(t, err)
	assert.Equal(t, model.QuestionStatusPending, q.Status)

	pool.Start()
	queue.Close()
	pool.Wait()

	answer := <-terminal
	assert.Contains(t, answer, "What is a cat?")
	questions.AssertExpectations(t)
}

func TestQuestionService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		answer := "an answer"
		questions := new(repoMocks.MockQuestionRepository)
		questions.On("FindByID", ctx, "q-id").
			Return(&model.Question{ID: "q-id", Status: model.QuestionStatusAnswered, Answer: &answer}, nil)

		svc := newQuestionService(new(repoMocks.MockDocumentRepository), questions, task.NewQueue(1, testLogger()))
		q, err := svc.Get(ctx, "q-id")

		require.NoError(t, err)
		assert.Equal(t, model.QuestionStatusAnswered, q.Status)
		assert.Equal(t, "an answer", *q.Answer)
	})

	t.Run("not found", func(t *testing.T) {
		questions := new(repoMocks.MockQuestionRepository)
		questions.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := newQuestionService(new(repoMocks.MockDocumentRepository), questions, task.NewQueue(1, testLogger()))
		q, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrQuestionNotFound)
		assert.Nil(t, q)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := newQuestionService(new(repoMocks.MockDocumentRepository), new(repoMocks.MockQuestionRepository), task.NewQueue(1, testLogger()))
		q, err := svc.Get(ctx, "")

		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Nil(t, q)
	})
}

func TestQuestionService_ListByDocument(t *testing.T) {
	ctx := context.Background()

	questions := new(repoMocks.MockQuestionRepository)
	questions.On("ListByDocument", ctx, "doc-id", repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Question]{
			Items: []model.Question{{ID: "q-id", DocumentID: "doc-id"}},
			Total: 1,
		}, nil)

	svc := newQuestionService(new(repoMocks.MockDocumentRepository), questions, task.NewQueue(1, testLogger()))
	res, err := svc.ListByDocument(ctx, "doc-id", 0, -1)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}
