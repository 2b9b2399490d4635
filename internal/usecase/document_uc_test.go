package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
)

func TestUploadCreatesPendingAndSubmits(t *testing.T) {
	repo := newMemDocumentRepo()
	store := newMemStorage()
	disp := &recordingDispatcher{}
	uc := NewDocumentUseCase(repo, store, disp, testLogger())

	doc, err := uc.Upload(context.Background(), "nda.txt", "text/plain", 11, strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if doc.Status != model.StatusPending {
		t.Fatalf("returned status = %s, want %s", doc.Status, model.StatusPending)
	}
	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatal("id and storage key must be assigned")
	}

	// Record persisted before the call returned.
	saved := repo.snapshot(doc.ID)
	if saved == nil || saved.Status != model.StatusPending {
		t.Fatal("pending record must exist before Upload returns")
	}

	// Bytes retrievable under the returned key.
	b, err := store.Load(context.Background(), doc.StorageKey)
	if err != nil || string(b) != "hello world" {
		t.Fatalf("stored bytes = %q, err %v", b, err)
	}

	if ids := disp.submitted(); len(ids) != 1 || ids[0] != doc.ID {
		t.Fatalf("dispatcher submissions = %v", ids)
	}
}

func TestUploadStorageFailureLeavesNoRecord(t *testing.T) {
	repo := newMemDocumentRepo()
	store := newMemStorage()
	store.storeErr = errors.New("bucket unavailable")
	disp := &recordingDispatcher{}
	uc := NewDocumentUseCase(repo, store, disp, testLogger())

	_, err := uc.Upload(context.Background(), "nda.txt", "text/plain", 5, strings.NewReader("hello"))
	if err == nil {
		t.Fatal("expected storage error")
	}
	if n, _ := repo.Count(context.Background(), nil); n != 0 {
		t.Fatal("storage failure must abort before record creation")
	}
	if len(disp.submitted()) != 0 {
		t.Fatal("nothing may be dispatched on failure")
	}
}

func TestUploadRecordCreationFailureNotDispatched(t *testing.T) {
	repo := newMemDocumentRepo()
	repo.saveErr = errors.New("db down")
	disp := &recordingDispatcher{}
	uc := NewDocumentUseCase(repo, newMemStorage(), disp, testLogger())

	_, err := uc.Upload(context.Background(), "nda.txt", "text/plain", 5, strings.NewReader("hello"))
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if len(disp.submitted()) != 0 {
		t.Fatal("nothing may be dispatched when the record was not created")
	}
}

func TestUploadValidation(t *testing.T) {
	uc := NewDocumentUseCase(newMemDocumentRepo(), newMemStorage(), &recordingDispatcher{}, testLogger())

	if _, err := uc.Upload(context.Background(), "  ", "text/plain", 5, strings.NewReader("hello")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty filename: err = %v", err)
	}
	if _, err := uc.Upload(context.Background(), "nda.txt", "text/plain", 0, strings.NewReader("")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty file: err = %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	uc := NewDocumentUseCase(newMemDocumentRepo(), newMemStorage(), &recordingDispatcher{}, testLogger())
	if _, err := uc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := uc.Get(context.Background(), " "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank id: err = %v", err)
	}
}

func TestListDefaultsPagination(t *testing.T) {
	repo := newMemDocumentRepo()
	uc := NewDocumentUseCase(repo, newMemStorage(), &recordingDispatcher{}, testLogger())

	for i := 0; i < 3; i++ {
		_, err := uc.Upload(context.Background(), "f.txt", "text/plain", 2, strings.NewReader("hi"))
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}

	docs, err := uc.List(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len = %d, want 3", len(docs))
	}
	n, err := uc.Count(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, err %v", n, err)
	}
}
