package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mdrank/internal/modules/exporter/domain"
	exporterout "mdrank/internal/modules/exporter/port/out"
)

// FileManifestStore reads exporters.json from the vault data directory.
// Relative binary paths resolve against the vault root, so a manifest can
// point at a binary checked into the vault itself.
type FileManifestStore struct {
	vaultPath string
	path      string
}

func NewFileManifestStore(vaultPath string, path string) exporterout.ManifestStore {
	return &FileManifestStore{vaultPath: vaultPath, path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read exporter manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode exporter manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.vaultPath, manifests[i].Binary))
		}
	}
	return manifests, nil
}
