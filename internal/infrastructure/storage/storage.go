package storage

import (
	"context"
	"io"
)

// FileStore stages uploaded media where the transcriber can read it
type FileStore interface {
	// Save writes r under name and returns the local path of the staged file
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Remove deletes the staged file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error
}
