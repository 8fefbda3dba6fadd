package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docqa/internal/service"
)

var validate = validator.New()

// uploadDocumentRequest carries the multipart form fields of a document upload.
// The file part is optional and handled separately.
type uploadDocumentRequest struct {
	Title   string `form:"title" validate:"required,min=1,max=255"`
	Content string `form:"content" validate:"required,min=10"`
}

// UploadDocument godoc
// @Summary Upload a document
// @Description Creates a document from a title, text content and an optional file attachment.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Document title (1-255 characters)"
// @Param content formData string true "Document content (at least 10 characters)"
// @Param file formData file false "Optional file attachment"
// @Success 201 {object} model.Document
// @Failure 400 {object} handler.errorPayload
// @Failure 500 {object} handler.errorPayload
// @Router /documents/ [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req uploadDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid form body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		in := service.UploadInput{
			Title:   req.Title,
			Content: req.Content,
		}

		// The file part is optional; a document may hold text content only.
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}

			in.File = f
			in.Filename = fh.Filename
			in.ContentType = ct
			in.Size = fh.Size
		}

		doc, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} handler.errorPayload
// @Router /documents/ [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetDocument godoc
// @Summary Get a document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} model.Document
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrDocumentNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DownloadDocumentFile godoc
// @Summary Download a document's stored file
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID (UUID)"
// @Success 200 {file} binary
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Router /documents/{id}/download [get]
func DownloadDocumentFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := svc.DownloadFile(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDocumentNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrNoStoredFile):
				return writeError(c, fiber.StatusNotFound, "NO_FILE", "document has no stored file")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		filename := "download"
		if doc.Filename != nil {
			filename = *doc.Filename
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		c.Set(fiber.HeaderContentType, "application/octet-stream")
		// fasthttp closes the stream after the response is written.
		return c.SendStream(rc)
	}
}

// pageParams parses limit/offset query parameters. On a malformed value it
// writes the error response and reports ok=false.
func pageParams(c *fiber.Ctx) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}
