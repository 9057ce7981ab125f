package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	previewout "mdrank/internal/modules/preview/adapter/out"
	rosteradapter "mdrank/internal/modules/roster/adapter/out"
	rosterdomain "mdrank/internal/modules/roster/domain"
	rosterservice "mdrank/internal/modules/roster/service"
	rosterusecase "mdrank/internal/modules/roster/usecase"
)

func write(t *testing.T, vault, rel, content string) {
	t.Helper()
	path := filepath.Join(vault, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// An attachment admitted through a sidecar note must resolve to the
// attachment's own path, so the preview reads the PDF and not the
// sidecar.
func TestResolveSidecarAttachment(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	write(t, vault, "papers/attention.pdf", "%PDF-1.4 stub")
	write(t, vault, "papers/attention.pdf.md", "---\ntitle: Attention\nrating: 1100\n---\n")

	pool := rosterdomain.Pool{ID: "papers", Name: "Papers", Folder: "papers", Property: "rating"}
	svc, err := rosterservice.NewRosterService([]rosterdomain.Pool{pool}, rosteradapter.NewVaultItemSource(vault))
	if err != nil {
		t.Fatalf("new roster service: %v", err)
	}
	resolver := previewout.NewRosterItemAdapter(rosterusecase.NewInteractor(svc), vault)

	ref, err := resolver.Resolve(context.Background(), "papers", "papers/attention.pdf")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasSuffix(ref.Path, filepath.Join("papers", "attention.pdf")) {
		t.Fatalf("expected the attachment path, got %q", ref.Path)
	}
	if strings.HasSuffix(ref.Path, ".md") {
		t.Fatalf("resolved the sidecar instead of the attachment: %q", ref.Path)
	}
	if ref.Title != "Attention" {
		t.Fatalf("sidecar title must carry over, got %q", ref.Title)
	}
}
