package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	exporterout "mdrank/internal/modules/exporter/adapter/out"
	"mdrank/internal/modules/exporter/domain"
)

func TestGRPCHostIntegrationReferenceExporter(t *testing.T) {
	binPath, checksum := buildReferenceExporter(t)
	manifest := domain.Manifest{
		Name:    "reference",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
	}

	host := exporterout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" {
		t.Fatalf("unexpected metadata name: %s", metadata.Name)
	}
	formats, err := host.ListFormats(ctx, manifest)
	if err != nil {
		t.Fatalf("list formats: %v", err)
	}
	if len(formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(formats))
	}

	snapshot := map[string]any{
		"pool":         "default",
		"generated_at": "2025-01-02",
		"standings": []map[string]any{
			{"rank": 1, "item_id": "notes/a.md", "name": "A", "rating": 1016, "games": 1},
			{"rank": 2, "item_id": "notes/b.md", "name": "B", "rating": 984, "games": 1},
		},
		"history": []map[string]any{
			{"at": "2025-01-02", "winner": "notes/a.md", "loser": "notes/b.md", "draw": false},
		},
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	result, err := host.Render(ctx, manifest, domain.RenderRequest{
		FormatID:     "markdown-table",
		SnapshotJSON: string(payload),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Filename != "rankings-default.md" {
		t.Fatalf("unexpected filename: %s", result.Filename)
	}
	body := string(result.Data)
	if !strings.Contains(body, "| 1 | A | 1016 | 1 |") {
		t.Fatalf("expected markdown table row, got:\n%s", body)
	}
	if !strings.Contains(body, "beat") {
		t.Fatalf("expected history line, got:\n%s", body)
	}
}

func buildReferenceExporter(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "reference-exporter")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference exporter: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built exporter: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
