package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mdrank/internal/modules/exporter/domain"
	"mdrank/internal/modules/exporter/dto"
	"mdrank/internal/modules/exporter/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	formats []domain.FormatDescriptor
}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h fakeHost) ListFormats(context.Context, domain.Manifest) ([]domain.FormatDescriptor, error) {
	return h.formats, nil
}
func (fakeHost) Render(_ context.Context, _ domain.Manifest, in domain.RenderRequest) (domain.RenderResult, error) {
	return domain.RenderResult{Filename: "rankings." + in.FormatID, MIME: "text/plain", Data: []byte("rendered")}, nil
}

func TestRenderRejectsDisabledExporter(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, false)
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{})
	_, err := svc.Render(context.Background(), dto.RenderInput{ExporterName: manifest.Name, FormatID: "json", SnapshotJSON: "{}"})
	if !errors.Is(err, domain.ErrExporterDisabled) {
		t.Fatalf("expected ErrExporterDisabled, got %v", err)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	svc := service.NewExporterService(
		fakeStore{manifests: []domain.Manifest{manifest}},
		fakeHost{formats: []domain.FormatDescriptor{{ID: "markdown-table"}}},
	)
	_, err := svc.Render(context.Background(), dto.RenderInput{ExporterName: manifest.Name, FormatID: "json", SnapshotJSON: "{}"})
	if !errors.Is(err, domain.ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound, got %v", err)
	}
}

func TestRenderRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	manifest.SHA256 = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{})
	_, err := svc.Render(context.Background(), dto.RenderInput{ExporterName: manifest.Name, FormatID: "json", SnapshotJSON: "{}"})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestRenderRejectsInvalidSnapshot(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	svc := service.NewExporterService(
		fakeStore{manifests: []domain.Manifest{manifest}},
		fakeHost{formats: []domain.FormatDescriptor{{ID: "json"}}},
	)
	_, err := svc.Render(context.Background(), dto.RenderInput{ExporterName: manifest.Name, FormatID: "json", SnapshotJSON: "{not json"})
	if err == nil {
		t.Fatalf("expected invalid snapshot error")
	}
}

func TestRenderSuccess(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	svc := service.NewExporterService(
		fakeStore{manifests: []domain.Manifest{manifest}},
		fakeHost{formats: []domain.FormatDescriptor{{ID: "json"}, {ID: "markdown-table"}}},
	)
	out, err := svc.Render(context.Background(), dto.RenderInput{ExporterName: manifest.Name, FormatID: "json", SnapshotJSON: `{"pool":"default"}`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.Filename != "rankings.json" {
		t.Fatalf("unexpected filename: %s", out.Filename)
	}
	if string(out.Data) != "rendered" {
		t.Fatalf("unexpected data: %q", out.Data)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest, manifest}}, fakeHost{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true)
	manifest.Binary = filepath.Join(t.TempDir(), "missing")
	svc := service.NewExporterService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{})
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].BinaryReachable {
		t.Fatalf("expected unreachable binary")
	}
	if results[0].Error == "" {
		t.Fatalf("expected error message")
	}
}

func manifestWithBinary(t *testing.T, enabled bool) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "exporter-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:    "demo",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  hex.EncodeToString(hash[:]),
		Enabled: enabled,
	}
}
