package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mdrank/internal/modules/exporter/domain"
	"mdrank/internal/modules/exporter/dto"
	exporterout "mdrank/internal/modules/exporter/port/out"
)

type ExporterService struct {
	store exporterout.ManifestStore
	host  exporterout.Host
}

func NewExporterService(store exporterout.ManifestStore, host exporterout.Host) *ExporterService {
	return &ExporterService{store: store, host: host}
}

func (s *ExporterService) List(ctx context.Context) ([]dto.ExporterInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExporterInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.ExporterInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *ExporterService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ExporterService) ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error) {
	manifest, err := s.getRunnableManifest(ctx, exporterName)
	if err != nil {
		return nil, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FormatInfo, 0, len(formats))
	for _, format := range formats {
		out = append(out, dto.FormatInfo{
			ID:        format.ID,
			Title:     format.Title,
			Extension: format.Extension,
			MIME:      format.MIME,
		})
	}
	return out, nil
}

func (s *ExporterService) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.ExporterName)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	if !json.Valid([]byte(input.SnapshotJSON)) {
		return dto.RenderOutput{}, fmt.Errorf("snapshot must be valid JSON")
	}
	req := domain.RenderRequest{FormatID: input.FormatID, SnapshotJSON: input.SnapshotJSON}
	if err := req.Validate(); err != nil {
		return dto.RenderOutput{}, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	if err := requireFormat(formats, input.FormatID); err != nil {
		return dto.RenderOutput{}, err
	}

	result, err := s.host.Render(ctx, manifest, req)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	if err := result.Validate(); err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{
		ExporterName: input.ExporterName,
		FormatID:     input.FormatID,
		Filename:     result.Filename,
		MIME:         result.MIME,
		Data:         result.Data,
	}, nil
}

func (s *ExporterService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate exporter name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ExporterService) getRunnableManifest(ctx context.Context, exporterName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == exporterName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("exporter %q not found", exporterName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterDisabled, exporterName)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterTimeout, exporterName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func requireFormat(formats []domain.FormatDescriptor, formatID string) error {
	for _, format := range formats {
		if err := format.Validate(); err != nil {
			return err
		}
		if format.ID == formatID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrFormatNotFound, formatID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read exporter binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
