package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	duelout "mdrank/internal/modules/duel/port/out"
)

// OSDocumentStore persists documents on the local filesystem under a
// fixed root. Keys are slash-separated paths relative to that root.
type OSDocumentStore struct {
	root string
}

func NewOSDocumentStore(root string) duelout.DocumentStore {
	return &OSDocumentStore{root: root}
}

func (s *OSDocumentStore) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *OSDocumentStore) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(s.abs(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

func (s *OSDocumentStore) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (s *OSDocumentStore) Write(_ context.Context, path string, data []byte) error {
	if err := os.WriteFile(s.abs(path), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Remove deletes a document. A document that is already gone is not
// an error.
func (s *OSDocumentStore) Remove(_ context.Context, path string) error {
	if err := os.Remove(s.abs(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *OSDocumentStore) MkdirAll(_ context.Context, dir string) error {
	if err := os.MkdirAll(s.abs(dir), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
