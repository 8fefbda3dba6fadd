package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"docqa/internal/generation"
	"docqa/internal/model"
)

// Construction errors.
var (
	ErrNilGenerator     = errors.New("generator cannot be nil")
	ErrNilQuestionStore = errors.New("question store cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyQuestionID  = errors.New("question id cannot be empty")
)

// QuestionUpdater is the slice of the question repository the answer task
// needs: the single terminal write. Satisfied by repository.QuestionRepository.
type QuestionUpdater interface {
	UpdateStatusAndAnswer(ctx context.Context, id string, status model.QuestionStatus, answer string) (*model.Question, error)
}

// AnswerTask drives one question from pending to a terminal state. It is the
// sole writer of that question's status and answer: the transition happens
// exactly once, to answered on success or failed on any error. If even the
// failed write cannot be committed, the question is left pending and the error
// surfaces to the worker pool's log.
type AnswerTask struct {
	id           uuid.UUID
	questionID   string
	questionText string
	generator    generation.Generator
	questions    QuestionUpdater
	logger       *slog.Logger
}

// NewAnswerTask creates a background answer production task for one question.
func NewAnswerTask(
	questionID string,
	questionText string,
	generator generation.Generator,
	questions QuestionUpdater,
	logger *slog.Logger,
) (*AnswerTask, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if questions == nil {
		return nil, ErrNilQuestionStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if questionID == "" {
		return nil, ErrEmptyQuestionID
	}

	return &AnswerTask{
		id:           uuid.New(),
		questionID:   questionID,
		questionText: questionText,
		generator:    generator,
		questions:    questions,
		logger:       logger.With("task_type", TaskTypeAnswer, "question_id", questionID),
	}, nil
}

// ID returns the task's unique identifier.
func (t *AnswerTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *AnswerTask) Type() string {
	return TaskTypeAnswer
}

// Execute produces the answer and commits the terminal transition.
func (t *AnswerTask) Execute(ctx context.Context) error {
	t.logger.Info("starting answer production")

	answer, err := t.generator.GenerateAnswer(ctx, t.questionText)
	if err != nil {
		t.logger.Error("answer generation failed", "error", err)
		return t.fail(ctx, err)
	}

	if _, err := t.questions.UpdateStatusAndAnswer(ctx, t.questionID, model.QuestionStatusAnswered, answer); err != nil {
		t.logger.Error("failed to store answer", "error", err)
		return t.fail(ctx, err)
	}

	t.logger.Info("question answered")
	return nil
}

// fail records the failed terminal state, storing an error-describing answer.
func (t *AnswerTask) fail(ctx context.Context, cause error) error {
	answer := fmt.Sprintf("Error: %v", cause)
	if _, err := t.questions.UpdateStatusAndAnswer(ctx, t.questionID, model.QuestionStatusFailed, answer); err != nil {
		// Recovery write failed too; the question stays pending.
		t.logger.Error("failed to mark question as failed, leaving it pending", "error", err)
		return fmt.Errorf("answer production failed (%v); recovery write failed: %w", cause, err)
	}

	t.logger.Info("question marked as failed")
	return fmt.Errorf("answer production failed: %w", cause)
}
