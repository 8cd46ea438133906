package interfaces

import (
	"context"
	"errors"
	"io"

	"proassignment/internal/domain/entities"
)

// ErrStoredFileMissing is returned by Open when no candidate location holds the file.
var ErrStoredFileMissing = errors.New("stored file missing")

// IFileStore keeps uploaded documents. Save returns a FileRef whose Path is the
// storage key used later by Open.
type IFileStore interface {
	Save(ctx context.Context, category, name string, r io.Reader, size int64, contentType string) (entities.FileRef, error)
	Open(ctx context.Context, path string) (io.ReadCloser, int64, error)
}
