package service

import (
	"context"
	"errors"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/pkg/ai/router"

	"github.com/google/uuid"
)

// routerStore bridges the dispatch core to the document service so that
// model-chosen arguments go through exactly the same validation and event
// publishing as the plain CRUD endpoints.
type routerStore struct {
	documents IDocumentService
}

var _ router.DocumentStore = &routerStore{}

func NewRouterStore(documents IDocumentService) router.DocumentStore {
	return &routerStore{documents: documents}
}

func (s *routerStore) List(ctx context.Context) ([]*router.Document, error) {
	responses, err := s.documents.List(ctx)
	if err != nil {
		return nil, translateStoreError(err)
	}
	documents := make([]*router.Document, 0, len(responses))
	for _, response := range responses {
		documents = append(documents, toRouterDocument(response))
	}
	return documents, nil
}

func (s *routerStore) Create(ctx context.Context, title, content string) (*router.Document, error) {
	response, err := s.documents.Create(ctx, &dto.CreateDocumentRequest{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, translateStoreError(err)
	}
	return toRouterDocument(response), nil
}

func (s *routerStore) Get(ctx context.Context, id uuid.UUID) (*router.Document, error) {
	response, err := s.documents.Show(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return toRouterDocument(response), nil
}

func (s *routerStore) Update(ctx context.Context, id uuid.UUID, update router.DocumentUpdate) (*router.Document, error) {
	response, err := s.documents.Update(ctx, &dto.UpdateDocumentRequest{
		Id:      id,
		Title:   update.Title,
		Content: update.Content,
	})
	if err != nil {
		return nil, translateStoreError(err)
	}
	return toRouterDocument(response), nil
}

func (s *routerStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		return translateStoreError(err)
	}
	return nil
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		return router.ErrDocumentNotFound
	case errors.Is(err, ErrTitleRequired):
		return &router.ValidationError{Reason: "`title` may not be blank."}
	case errors.Is(err, ErrContentRequired):
		return &router.ValidationError{Reason: "`content` may not be blank."}
	default:
		return err
	}
}

func toRouterDocument(response *dto.DocumentResponse) *router.Document {
	return &router.Document{
		Id:        response.Id,
		Title:     response.Title,
		Content:   response.Content,
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}
}
