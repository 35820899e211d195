package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes objects to a local directory served by the API under
// /uploads/. Used in development when no hosted storage is configured.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the upload directory if needed and returns a store
// whose public URLs live under baseURL/uploads/.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the directory objects are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	// Keys come from ObjectKey and contain no separators, but never trust
	// a path that ends up under filepath.Join.
	name := filepath.Base(key)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return s.baseURL + "/uploads/" + name, nil
}
