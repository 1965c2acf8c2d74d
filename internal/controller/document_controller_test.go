package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubDocumentService struct {
	createResp *dto.DocumentResponse
	showResp   *dto.DocumentResponse
	listResp   []*dto.DocumentResponse
	updateResp *dto.DocumentResponse
	err        error
}

func (s *stubDocumentService) Create(context.Context, *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return s.createResp, s.err
}
func (s *stubDocumentService) Show(context.Context, uuid.UUID) (*dto.DocumentResponse, error) {
	return s.showResp, s.err
}
func (s *stubDocumentService) List(context.Context) ([]*dto.DocumentResponse, error) {
	return s.listResp, s.err
}
func (s *stubDocumentService) Update(context.Context, *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	return s.updateResp, s.err
}
func (s *stubDocumentService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func newDocumentApp(svc service.IDocumentService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewDocumentController(svc).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, decoded
}

func TestDocumentControllerCreate(t *testing.T) {
	doc := &dto.DocumentResponse{Id: uuid.New(), Title: "Roadmap", Content: "Q3", CreatedAt: time.Now()}
	app := newDocumentApp(&stubDocumentService{createResp: doc})

	status, body := doJSON(t, app, "POST", "/api/documents", dto.CreateDocumentRequest{Title: "Roadmap", Content: "Q3"})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Roadmap", data["title"])
}

func TestDocumentControllerCreateValidation(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{})

	t.Run("missing title", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/documents", map[string]string{"content": "x"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("missing content", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/documents", map[string]string{"title": "x"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestDocumentControllerShow(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		app := newDocumentApp(&stubDocumentService{})
		status, body := doJSON(t, app, "GET", "/api/documents/not-a-uuid", nil)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid document id.", body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		app := newDocumentApp(&stubDocumentService{err: service.ErrDocumentNotFound})
		status, body := doJSON(t, app, "GET", fmt.Sprintf("/api/documents/%s", uuid.New()), nil)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Document not found.", body["message"])
	})
}

func TestDocumentControllerUpdateBlankTitle(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{err: service.ErrTitleRequired})

	status, body := doJSON(t, app, "PATCH", fmt.Sprintf("/api/documents/%s", uuid.New()), map[string]string{"title": " "})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "`title` may not be blank.", body["message"])
}

func TestDocumentControllerUpdateBlankContent(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{err: service.ErrContentRequired})

	status, body := doJSON(t, app, "PATCH", fmt.Sprintf("/api/documents/%s", uuid.New()), map[string]string{"content": ""})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "`content` may not be blank.", body["message"])
}

func TestDocumentControllerDelete(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{})

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/api/documents/%s", uuid.New()), nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestDocumentControllerInternalError(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{err: fmt.Errorf("pq: connection reset")})

	status, body := doJSON(t, app, "GET", "/api/documents", nil)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["message"])
}
