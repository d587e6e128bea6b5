package storage

import (
	"context"
	"io"
)

// FileStorage stores generated payroll documents.
type FileStorage interface {
	// Save writes the content to path and returns the cleaned path
	Save(ctx context.Context, content io.Reader, path string) (string, error)
}
