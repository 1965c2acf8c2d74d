package router

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is the router's view of a stored knowledge-base entry.
type Document struct {
	Id        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// DocumentUpdate carries the partial fields of an update_document action.
// Nil fields are left untouched.
type DocumentUpdate struct {
	Title   *string
	Content *string
}

// DocumentStore is the persistence collaborator the executors run against.
// Implementations return ErrDocumentNotFound when no document matches an id
// and *ValidationError for domain validation failures.
type DocumentStore interface {
	List(ctx context.Context) ([]*Document, error)
	Create(ctx context.Context, title, content string) (*Document, error)
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	Update(ctx context.Context, id uuid.UUID, update DocumentUpdate) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SerializeDocument flattens a document into the payload shape returned to
// callers and fed to response templates.
func SerializeDocument(d *Document) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         d.Id.String(),
		"title":      d.Title,
		"content":    d.Content,
		"created_at": d.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": nil,
	}
	if d.UpdatedAt != nil {
		payload["updated_at"] = d.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
