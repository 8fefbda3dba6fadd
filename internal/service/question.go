package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docqa/internal/generation"
	"docqa/internal/model"
	"docqa/internal/repository"
	"docqa/internal/task"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionTooShort = errors.New("question text must be at least 5 characters")
)

// QuestionListResult is the service-level DTO for a document's questions.
type QuestionListResult struct {
	Items []model.Question `json:"data"`
	Total int              `json:"total"`
}

// QuestionService owns the question lifecycle: it creates questions in the
// pending state, schedules exactly one background answer production unit per
// submission, and serves reads. The scheduled task is the sole writer of a
// question's terminal state.
type QuestionService interface {
	// Submit validates the document reference, persists a pending question and
	// schedules its answer production. The pending question is returned
	// immediately; the terminal transition happens on the worker pool.
	Submit(ctx context.Context, documentID, questionText string) (*model.Question, error)

	// Get returns a question by its ID.
	Get(ctx context.Context, id string) (*model.Question, error)

	// ListByDocument returns the questions submitted against one document.
	ListByDocument(ctx context.Context, documentID string, limit, offset int) (*QuestionListResult, error)
}

// questionService is a concrete implementation of QuestionService.
type questionService struct {
	documents repository.DocumentRepository
	questions repository.QuestionRepository
	generator generation.Generator
	queue     task.QueueWriter
	logger    *slog.Logger
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(
	documents repository.DocumentRepository,
	questions repository.QuestionRepository,
	generator generation.Generator,
	queue task.QueueWriter,
	logger *slog.Logger,
) QuestionService {
	return &questionService{
		documents: documents,
		questions: questions,
		generator: generator,
		queue:     queue,
		logger:    logger,
	}
}

func (s *questionService) Submit(ctx context.Context, documentID, questionText string) (*model.Question, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if utf8.RuneCountInString(questionText) < 5 {
		return nil, ErrQuestionTooShort
	}

	// The document must exist at creation time.
	if _, err := s.documents.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	question := &model.Question{
		ID:           uuid.New().String(),
		DocumentID:   documentID,
		QuestionText: questionText,
		Status:       model.QuestionStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.questions.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	answerTask, err := task.NewAnswerTask(stored.ID, stored.QuestionText, s.generator, s.questions, s.logger)
	if err != nil {
		return nil, fmt.Errorf("build answer task: %w", err)
	}
	if err := s.queue.Enqueue(answerTask); err != nil {
		// The row exists but no unit of work was scheduled; surface the error
		// so the caller knows the question will not progress.
		return nil, fmt.Errorf("schedule answer task: %w", err)
	}

	s.logger.Info("question submitted",
		"question_id", stored.ID,
		"document_id", documentID)

	return stored, nil
}

// Get returns a question by ID.
func (s *questionService) Get(ctx context.Context, id string) (*model.Question, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

// ListByDocument returns paginated questions of one document.
func (s *questionService) ListByDocument(ctx context.Context, documentID string, limit, offset int) (*QuestionListResult, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.questions.ListByDocument(ctx, documentID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &QuestionListResult{Items: res.Items, Total: res.Total}, nil
}
