package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/repository"
	"docqa/internal/storage"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoStoredFile     = errors.New("document has no stored file")
)

// UploadInput carries the fields of a document upload. File is optional; when
// nil, the document holds text content only and Filename/ContentType/Size are
// ignored.
type UploadInput struct {
	Title       string
	Content     string
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents. Documents are
// immutable once created; there is no update or delete use case.
type DocumentService interface {
	// Upload persists the document metadata and, when a file is attached,
	// streams it to object storage first. The object is rolled back if the DB
	// save fails. The stored object key is UUID-based; the original filename
	// is kept on the record and in object metadata.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// DownloadFile returns a streaming reader over the document's stored file.
	// The caller must close the reader.
	DownloadFile(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	doc := &model.Document{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}

	// Stream the optional file to object storage before touching the database.
	var objectKey string
	if in.File != nil {
		key := path.Join("uploads", doc.ID+filepath.Ext(in.Filename))
		objInfo, err := s.store.Put(ctx, key, in.File, storage.PutObjectOptions{
			Size:        in.Size,
			ContentType: in.ContentType,
			Metadata: map[string]string{
				"original-filename": in.Filename,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		objectKey = objInfo.Key
		filename := in.Filename
		doc.Filename = &filename
		doc.Filepath = &objectKey
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if objectKey != "" {
			if delErr := s.store.Delete(ctx, objectKey); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// DownloadFile streams the stored object of a document.
func (s *documentService) DownloadFile(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc.Filepath == nil {
		return nil, nil, ErrNoStoredFile
	}
	rc, _, err := s.store.Get(ctx, *doc.Filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("get from storage: %w", err)
	}
	return rc, doc, nil
}
