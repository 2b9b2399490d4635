package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
	"legal-document-insight/internal/domain/ports/repository"
)

// memDocumentRepo is a small in-memory implementation used by unit tests.
type memDocumentRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Document
	saveErr error // simulate persistence failures
	findErr error
	// saveErrAfter fails Save only after this many successful saves
	// (0 means saveErr applies immediately).
	saveErrAfter int
	saves        int
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{store: make(map[string]*model.Document)}
}

func (m *memDocumentRepo) Save(ctx context.Context, tx repository.Tx, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil && m.saves >= m.saveErrAfter {
		return m.saveErr
	}
	m.saves++
	cp := *doc
	m.store[doc.ID] = &cp
	return nil
}

func (m *memDocumentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	d, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDocumentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Document
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return []*model.Document{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *memDocumentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memDocumentRepo) snapshot(id string) *model.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		cp := *d
		return &cp
	}
	return nil
}

// memStorage keeps stored blobs in a map.
type memStorage struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	storeErr error
	loadErr  error
}

func newMemStorage() *memStorage { return &memStorage{blobs: make(map[string][]byte)} }

func (s *memStorage) Store(ctx context.Context, suggestedName, contentType string, r io.Reader, size int64) (string, error) {
	if s.storeErr != nil {
		return "", s.storeErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	key := uuid.NewString() + "_" + suggestedName
	s.mu.Lock()
	s.blobs[key] = buf.Bytes()
	s.mu.Unlock()
	return key, nil
}

func (s *memStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q not found", key)
	}
	return b, nil
}

// fakeExtractor returns a fixed text or error.
type fakeExtractor struct {
	out string
	err error
}

func (f *fakeExtractor) Extract(data []byte, contentType, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.out != "" {
		return f.out, nil
	}
	return string(data), nil
}

// fakeInsight serves canned summarize/clause responses and records inputs.
type fakeInsight struct {
	mu         sync.Mutex
	summary    string
	clauses    string
	sumErr     error
	clausesErr error
	sumCalls   []string
	clCalls    []string
}

func (f *fakeInsight) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.sumCalls = append(f.sumCalls, text)
	f.mu.Unlock()
	if f.sumErr != nil {
		return "", f.sumErr
	}
	return f.summary, nil
}

func (f *fakeInsight) ExtractClauses(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.clCalls = append(f.clCalls, text)
	f.mu.Unlock()
	if f.clausesErr != nil {
		return "", f.clausesErr
	}
	return f.clauses, nil
}

// recordingDispatcher collects submitted ids without running anything.
type recordingDispatcher struct {
	mu  sync.Mutex
	ids []string
}

func (d *recordingDispatcher) Submit(documentID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, documentID)
}

func (d *recordingDispatcher) submitted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ids...)
}
