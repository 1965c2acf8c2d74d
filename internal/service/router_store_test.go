package service

import (
	"context"
	"errors"
	"testing"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/pkg/ai/router"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type erroringDocumentService struct {
	err error
}

func (s *erroringDocumentService) Create(context.Context, *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return nil, s.err
}
func (s *erroringDocumentService) Show(context.Context, uuid.UUID) (*dto.DocumentResponse, error) {
	return nil, s.err
}
func (s *erroringDocumentService) List(context.Context) ([]*dto.DocumentResponse, error) {
	return nil, s.err
}
func (s *erroringDocumentService) Update(context.Context, *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	return nil, s.err
}
func (s *erroringDocumentService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func TestRouterStoreErrorTranslation(t *testing.T) {
	ctx := context.Background()

	t.Run("not found becomes a router validation error", func(t *testing.T) {
		store := NewRouterStore(&erroringDocumentService{err: ErrDocumentNotFound})

		_, err := store.Get(ctx, uuid.New())
		var vErr *router.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Requested document does not exist.", vErr.Reason)
	})

	t.Run("blank title becomes a router validation error", func(t *testing.T) {
		store := NewRouterStore(&erroringDocumentService{err: ErrTitleRequired})

		_, err := store.Create(ctx, "  ", "content")
		var vErr *router.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "`title` may not be blank.", vErr.Reason)
	})

	t.Run("blank content becomes a router validation error", func(t *testing.T) {
		store := NewRouterStore(&erroringDocumentService{err: ErrContentRequired})

		_, err := store.Create(ctx, "Title", "")
		var vErr *router.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "`content` may not be blank.", vErr.Reason)
	})

	t.Run("internal errors pass through untranslated", func(t *testing.T) {
		boom := errors.New("pq: connection reset")
		store := NewRouterStore(&erroringDocumentService{err: boom})

		_, err := store.List(ctx)
		assert.ErrorIs(t, err, boom)
		var vErr *router.ValidationError
		assert.False(t, errors.As(err, &vErr))
	})
}

// The model-driven path shares the service's validation with the REST
// endpoints: empty content is refused on both.
func TestRouterStoreCreateRejectsEmptyContent(t *testing.T) {
	svc, repo, _ := newTestDocumentService()
	store := NewRouterStore(svc)

	_, err := store.Create(context.Background(), "Title", "")
	var vErr *router.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "`content` may not be blank.", vErr.Reason)
	assert.Empty(t, repo.documents)
}

func TestRouterStoreMapsDocuments(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	store := NewRouterStore(svc)
	ctx := context.Background()

	created, err := store.Create(ctx, "Roadmap", "Q3 plans")
	assert.NoError(t, err)
	assert.Equal(t, "Roadmap", created.Title)

	got, err := store.Get(ctx, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Q3 plans", got.Content)

	newContent := "Q4 plans"
	updated, err := store.Update(ctx, created.Id, router.DocumentUpdate{Content: &newContent})
	assert.NoError(t, err)
	assert.Equal(t, "Q4 plans", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)

	assert.NoError(t, store.Delete(ctx, created.Id))
	_, err = store.Get(ctx, created.Id)
	var vErr *router.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
