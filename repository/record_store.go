package repository

import (
	"context"
	"errors"

	"github.com/arrivaldo/code-challenge-backend/models"
)

var (
	// ErrStorageUnavailable marks reads or writes that failed because of
	// the underlying medium: I/O error, permissions, corrupt content.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrVersionConflict is returned by Save when the stored document has
	// moved past the version the caller loaded from.
	ErrVersionConflict = errors.New("document version conflict")
)

// RecordStore defines the interface for whole-document persistence. There
// is no partial update: every mutation is load-modify-save of the full
// document, and Save rejects a stale base version.
type RecordStore interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}
