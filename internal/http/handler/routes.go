package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/service"
)

// RegisterRoutes attaches the HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, qSvc service.QuestionService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	documents := app.Group("/documents")
	documents.Post("/", UploadDocument(docSvc))
	documents.Get("/", ListDocuments(docSvc))
	documents.Get("/:id", GetDocument(docSvc))
	documents.Get("/:id/download", DownloadDocumentFile(docSvc))
	documents.Get("/:id/questions", ListDocumentQuestions(qSvc))

	questions := app.Group("/questions")
	questions.Post("/:document_id/question", SubmitQuestion(qSvc))
	questions.Get("/:id", GetQuestionStatus(qSvc))
}
