package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps uploads in a local directory
type DiskStore struct {
	dir string
}

var _ FileStore = (*DiskStore)(nil)

// NewDiskStore creates dir if absent
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the upload directory
func (d *DiskStore) Dir() string {
	return d.dir
}

// Path returns where name is staged
func (d *DiskStore) Path(name string) string {
	return filepath.Join(d.dir, filepath.Base(name))
}

// Save writes r to the upload directory, replacing any file with the same name
func (d *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	path := d.Path(name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// Remove deletes the staged file
func (d *DiskStore) Remove(ctx context.Context, name string) error {
	if err := os.Remove(d.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
