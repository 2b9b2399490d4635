package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
)

// --- Mock use case ---

type mockDocUC struct {
	mu        sync.Mutex
	docs      map[string]*model.Document
	uploadErr error
	listErr   error
}

func newMockDocUC() *mockDocUC { return &mockDocUC{docs: map[string]*model.Document{}} }

func (m *mockDocUC) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.Document, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := model.NewDocument("doc-1", filename, "key_"+filename, contentType, size)
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *mockDocUC) Get(ctx context.Context, id string) (*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocUC) List(ctx context.Context, offset, limit int) ([]*model.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Document
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDocUC) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs), nil
}

func newTestServer(uc *mockDocUC) http.Handler {
	l := zerolog.Nop()
	return NewServer(uc, &l).Router()
}

func fileHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return h
}

func multipartBody(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(fileHeader(field, filename, contentType))
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	uc := newMockDocUC()
	srv := newTestServer(uc)

	body, ct := multipartBody(t, "file", "nda.txt", "text/plain", "hello world")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var doc model.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Status != model.StatusPending {
		t.Errorf("returned status = %s, want pending", doc.Status)
	}
	if doc.Filename != "nda.txt" {
		t.Errorf("filename = %q", doc.Filename)
	}
}

func TestUploadMissingFileField(t *testing.T) {
	srv := newTestServer(newMockDocUC())

	body, ct := multipartBody(t, "document", "nda.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadInvalidArgument(t *testing.T) {
	uc := newMockDocUC()
	uc.uploadErr = domain.ErrInvalidArgument
	srv := newTestServer(uc)

	body, ct := multipartBody(t, "file", "nda.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadInternalError(t *testing.T) {
	uc := newMockDocUC()
	uc.uploadErr = errors.New("bucket down")
	srv := newTestServer(uc)

	body, ct := multipartBody(t, "file", "nda.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGetDocumentEndpoint(t *testing.T) {
	uc := newMockDocUC()
	srv := newTestServer(uc)
	_, _ = uc.Upload(context.Background(), "nda.txt", "text/plain", 5, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc model.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ID != "doc-1" {
		t.Errorf("id = %q", doc.ID)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	srv := newTestServer(newMockDocUC())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/ghost", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListDocumentsEnvelope(t *testing.T) {
	uc := newMockDocUC()
	srv := newTestServer(uc)
	_, _ = uc.Upload(context.Background(), "a.txt", "text/plain", 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=10", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data   []*model.Document `json:"data"`
		Total  int               `json:"total"`
		Limit  int               `json:"limit"`
		Offset int               `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Limit != 10 {
		t.Fatalf("envelope = %+v", resp)
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	srv := newTestServer(newMockDocUC())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp struct {
		Data []*model.Document `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data == nil {
		t.Fatal("data must be an empty array, not null")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(newMockDocUC())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
