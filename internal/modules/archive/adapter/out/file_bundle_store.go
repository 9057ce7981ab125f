package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mdrank/internal/modules/archive/domain"
	archiveout "mdrank/internal/modules/archive/port/out"
)

// FileBundleStore reads and writes export bundles at caller-chosen
// paths.
type FileBundleStore struct{}

func NewFileBundleStore() archiveout.BundleStore {
	return &FileBundleStore{}
}

func (s *FileBundleStore) Write(_ context.Context, path string, bundle domain.Bundle) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bundle dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

func (s *FileBundleStore) Read(_ context.Context, path string) (domain.Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	bundle := domain.Bundle{}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return domain.Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	return bundle, nil
}
