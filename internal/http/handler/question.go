package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/service"
	"docqa/internal/task"
)

// submitQuestionRequest is the JSON body of a question submission.
type submitQuestionRequest struct {
	QuestionText string `json:"question_text" validate:"required,min=5"`
}

// questionStatusResponse exposes a question's processing state.
type questionStatusResponse struct {
	Status model.QuestionStatus `json:"status"`
	Answer *string              `json:"answer"`
}

// SubmitQuestion godoc
// @Summary Submit a question against a document
// @Description Persists a pending question and schedules its answer production in the background.
// @Tags questions
// @Accept json
// @Produce json
// @Param document_id path string true "Document ID (UUID)"
// @Param request body handler.submitQuestionRequest true "Question payload"
// @Success 202 {object} model.Question
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Failure 503 {object} handler.errorPayload
// @Router /questions/{document_id}/question [post]
func SubmitQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("document_id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id format")
		}

		var req submitQuestionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		question, err := svc.Submit(c.UserContext(), documentID, req.QuestionText)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDocumentNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrQuestionTooShort):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "question_text must be at least 5 characters")
			case errors.Is(err, task.ErrQueueFull), errors.Is(err, task.ErrQueueClosed):
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "answer queue unavailable, try again later")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusAccepted).JSON(question)
	}
}

// GetQuestionStatus godoc
// @Summary Get a question's status and answer
// @Tags questions
// @Produce json
// @Param id path string true "Question ID (UUID)"
// @Success 200 {object} handler.questionStatusResponse
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Router /questions/{id} [get]
func GetQuestionStatus(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		question, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrQuestionNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "question not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(questionStatusResponse{
			Status: question.Status,
			Answer: question.Answer,
		})
	}
}

// ListDocumentQuestions godoc
// @Summary List the questions submitted against a document
// @Tags questions
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.QuestionListResult
// @Failure 400 {object} handler.errorPayload
// @Router /documents/{id}/questions [get]
func ListDocumentQuestions(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id format")
		}

		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}

		res, err := svc.ListByDocument(c.UserContext(), documentID, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
