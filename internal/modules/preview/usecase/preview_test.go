package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mdrank/internal/modules/preview/domain"
	"mdrank/internal/modules/preview/dto"
	"mdrank/internal/modules/preview/service"
	"mdrank/internal/modules/preview/usecase"
)

type fakeResolver struct {
	items map[string]domain.ItemRef
}

func (r fakeResolver) Resolve(_ context.Context, _, itemID string) (domain.ItemRef, error) {
	item, ok := r.items[itemID]
	if !ok {
		return domain.ItemRef{}, errors.New("item not found")
	}
	return item, nil
}

type fakeNoteReader struct {
	content map[string]string
}

func (r fakeNoteReader) Read(_ context.Context, path string) (string, error) {
	content, ok := r.content[path]
	if !ok {
		return "", errors.New("note not found")
	}
	return content, nil
}

type fakePDFReader struct {
	pages map[string][]string
}

func (r fakePDFReader) ReadPage(_ context.Context, path string, page int) (domain.Page, int, error) {
	pages, ok := r.pages[path]
	if !ok {
		return domain.Page{}, 0, errors.New("pdf not found")
	}
	if page > len(pages) {
		page = len(pages)
	}
	return domain.Page{Number: page, Text: pages[page-1]}, len(pages), nil
}

type fakeLauncher struct {
	opened []string
}

func (l *fakeLauncher) Open(_ context.Context, target string) error {
	l.opened = append(l.opened, target)
	return nil
}

func TestLoadMarkdownStripsFrontmatter(t *testing.T) {
	t.Parallel()
	resolver := fakeResolver{items: map[string]domain.ItemRef{
		"notes/a.md": {ID: "notes/a.md", Title: "Note A", PoolID: "default", Path: "/vault/notes/a.md"},
	}}
	notes := fakeNoteReader{content: map[string]string{
		"/vault/notes/a.md": "---\ntitle: Note A\nrank: true\n---\n# Heading\n\nBody text.\n",
	}}
	uc := usecase.NewInteractor(service.NewPreviewService(notes, fakePDFReader{}, resolver, nil))

	out, err := uc.Load(context.Background(), dto.LoadInput{PoolID: "default", ItemID: "notes/a.md"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Kind != "markdown" {
		t.Fatalf("expected markdown kind, got %s", out.Kind)
	}
	if strings.Contains(out.Content, "rank: true") {
		t.Fatalf("expected frontmatter stripped, got:\n%s", out.Content)
	}
	if !strings.Contains(out.Content, "# Heading") {
		t.Fatalf("expected body content, got:\n%s", out.Content)
	}
}

func TestLoadMarkdownKeepsBodyOnBrokenFrontmatter(t *testing.T) {
	t.Parallel()
	resolver := fakeResolver{items: map[string]domain.ItemRef{
		"notes/a.md": {ID: "notes/a.md", Title: "Note A", PoolID: "default", Path: "/vault/notes/a.md"},
	}}
	notes := fakeNoteReader{content: map[string]string{
		"/vault/notes/a.md": "---\ntitle: unterminated\nBody text.\n",
	}}
	uc := usecase.NewInteractor(service.NewPreviewService(notes, fakePDFReader{}, resolver, nil))

	out, err := uc.Load(context.Background(), dto.LoadInput{PoolID: "default", ItemID: "notes/a.md"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out.Content, "Body text.") {
		t.Fatalf("expected raw body fallback, got:\n%s", out.Content)
	}
}

func TestLoadPDFByExtension(t *testing.T) {
	t.Parallel()
	resolver := fakeResolver{items: map[string]domain.ItemRef{
		"papers/p.pdf": {ID: "papers/p.pdf", Title: "Paper", PoolID: "default", Path: "/vault/papers/p.pdf"},
	}}
	pdfs := fakePDFReader{pages: map[string][]string{
		"/vault/papers/p.pdf": {"page one", "page two"},
	}}
	uc := usecase.NewInteractor(service.NewPreviewService(fakeNoteReader{}, pdfs, resolver, nil))

	out, err := uc.Load(context.Background(), dto.LoadInput{PoolID: "default", ItemID: "papers/p.pdf", Page: 2})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Kind != "pdf" {
		t.Fatalf("expected pdf kind, got %s", out.Kind)
	}
	if out.Page != 2 || out.TotalPages != 2 {
		t.Fatalf("expected page 2 of 2, got %d of %d", out.Page, out.TotalPages)
	}
	if out.Content != "page two" {
		t.Fatalf("unexpected page text: %q", out.Content)
	}
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Parallel()
	resolver := fakeResolver{items: map[string]domain.ItemRef{
		"notes/a.md": {ID: "notes/a.md", Path: "/vault/notes/a.md"},
	}}
	uc := usecase.NewInteractor(service.NewPreviewService(fakeNoteReader{}, fakePDFReader{}, resolver, nil))
	if _, err := uc.Load(context.Background(), dto.LoadInput{PoolID: "default", ItemID: "notes/a.md", Mode: "video"}); err == nil {
		t.Fatalf("expected invalid mode error")
	}
}

func TestLoadUnknownItemFails(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewPreviewService(fakeNoteReader{}, fakePDFReader{}, fakeResolver{}, nil))
	if _, err := uc.Load(context.Background(), dto.LoadInput{PoolID: "default", ItemID: "notes/missing.md"}); err == nil {
		t.Fatalf("expected resolve error")
	}
}

func TestOpenExternalLaunchesResolvedPath(t *testing.T) {
	t.Parallel()
	resolver := fakeResolver{items: map[string]domain.ItemRef{
		"notes/a.md": {ID: "notes/a.md", Path: "/vault/notes/a.md"},
	}}
	launcher := &fakeLauncher{}
	uc := usecase.NewInteractor(service.NewPreviewService(fakeNoteReader{}, fakePDFReader{}, resolver, launcher))

	out, err := uc.OpenExternal(context.Background(), dto.OpenExternalInput{PoolID: "default", ItemID: "notes/a.md"})
	if err != nil {
		t.Fatalf("open external: %v", err)
	}
	if out.Target != "/vault/notes/a.md" {
		t.Fatalf("unexpected target: %s", out.Target)
	}
	if len(launcher.opened) != 1 || launcher.opened[0] != "/vault/notes/a.md" {
		t.Fatalf("expected launcher call, got %v", launcher.opened)
	}
}
