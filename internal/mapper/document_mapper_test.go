package mapper

import (
	"testing"
	"time"

	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDocumentMapperToEntity(t *testing.T) {
	m := NewDocumentMapper()
	now := time.Now()

	t.Run("never updated", func(t *testing.T) {
		e := m.ToEntity(&model.Document{
			Id:        uuid.New(),
			Title:     "Title",
			Content:   "Content",
			CreatedAt: now,
		})

		assert.Equal(t, "Title", e.Title)
		assert.Nil(t, e.UpdatedAt, "zero UpdatedAt should map to nil")
	})

	t.Run("updated", func(t *testing.T) {
		updated := now.Add(time.Hour)
		e := m.ToEntity(&model.Document{
			Id:        uuid.New(),
			Title:     "Title",
			Content:   "Content",
			CreatedAt: now,
			UpdatedAt: updated,
		})

		if assert.NotNil(t, e.UpdatedAt) {
			assert.Equal(t, updated, *e.UpdatedAt)
		}
	})

	t.Run("nil model", func(t *testing.T) {
		assert.Nil(t, m.ToEntity(nil))
	})
}

func TestDocumentMapperRoundTrip(t *testing.T) {
	m := NewDocumentMapper()
	now := time.Now()
	updated := now.Add(time.Minute)

	original := &entity.Document{
		Id:        uuid.New(),
		Title:     "Roadmap",
		Content:   "Q3 plans",
		CreatedAt: now,
		UpdatedAt: &updated,
	}

	back := m.ToEntity(m.ToModel(original))

	assert.Equal(t, original.Id, back.Id)
	assert.Equal(t, original.Title, back.Title)
	assert.Equal(t, original.Content, back.Content)
	if assert.NotNil(t, back.UpdatedAt) {
		assert.Equal(t, updated, *back.UpdatedAt)
	}
}

func TestDocumentMapperToEntities(t *testing.T) {
	m := NewDocumentMapper()

	entities := m.ToEntities([]*model.Document{
		{Id: uuid.New(), Title: "A"},
		{Id: uuid.New(), Title: "B"},
	})

	assert.Len(t, entities, 2)
	assert.Equal(t, "A", entities[0].Title)
	assert.Equal(t, "B", entities[1].Title)
}
