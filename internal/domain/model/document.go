package model

import (
	"time"

	"legal-document-insight/internal/domain"
)

type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Terminal reports whether no further automatic transition is allowed.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s ProcessingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Document is the durable record for one uploaded legal document. It is the
// single source of truth for pipeline progress: created pending during upload
// handling and mutated only by the processing use case afterwards.
type Document struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	StorageKey  string           `json:"storage_key"`
	ContentType string           `json:"content_type"`
	SizeBytes   int64            `json:"size_bytes"`
	Status      ProcessingStatus `json:"status"`

	// ExtractionResult and Summary stay empty until the transition into
	// completed; they are set together or not at all.
	ExtractionResult string `json:"extraction_result,omitempty"`
	Summary          string `json:"summary,omitempty"`
	LastError        string `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDocument(id, filename, storageKey, contentType string, sizeBytes int64) *Document {
	now := time.Now()
	return &Document{
		ID:          id,
		Filename:    filename,
		StorageKey:  storageKey,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkProcessing moves pending -> processing.
func (d *Document) MarkProcessing() error {
	if d.Status.Terminal() {
		return domain.ErrTerminalStatus
	}
	if d.Status != StatusPending {
		return domain.ErrInvalidTransition
	}
	d.Status = StatusProcessing
	d.UpdatedAt = time.Now()
	return nil
}

// MarkCompleted moves processing -> completed and commits both result fields
// in the same step, so a completed record always carries its results.
func (d *Document) MarkCompleted(extractionResult, summary string) error {
	if d.Status.Terminal() {
		return domain.ErrTerminalStatus
	}
	if d.Status != StatusProcessing {
		return domain.ErrInvalidTransition
	}
	d.Status = StatusCompleted
	d.ExtractionResult = extractionResult
	d.Summary = summary
	d.LastError = ""
	d.UpdatedAt = time.Now()
	return nil
}

// MarkFailed moves any non-terminal status to failed. Result fields keep
// whatever value they held before the failure.
func (d *Document) MarkFailed(reason string) error {
	if d.Status.Terminal() {
		return domain.ErrTerminalStatus
	}
	d.Status = StatusFailed
	d.LastError = reason
	d.UpdatedAt = time.Now()
	return nil
}
