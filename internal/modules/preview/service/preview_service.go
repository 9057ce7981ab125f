package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mdrank/internal/modules/preview/domain"
	previewout "mdrank/internal/modules/preview/port/out"
	"mdrank/internal/platform/markdown"
)

type PreviewService struct {
	notes    previewout.NoteReader
	pdfs     previewout.PDFReader
	resolver previewout.ItemResolver
	launcher previewout.ExternalLauncher
}

func NewPreviewService(
	notes previewout.NoteReader,
	pdfs previewout.PDFReader,
	resolver previewout.ItemResolver,
	launcher previewout.ExternalLauncher,
) *PreviewService {
	return &PreviewService{notes: notes, pdfs: pdfs, resolver: resolver, launcher: launcher}
}

func (s *PreviewService) Load(ctx context.Context, poolID, itemID, mode string, page int) (domain.Document, error) {
	if s.resolver == nil {
		return domain.Document{}, fmt.Errorf("item resolver is not configured")
	}
	item, err := s.resolver.Resolve(ctx, poolID, itemID)
	if err != nil {
		return domain.Document{}, err
	}
	kind, err := resolveKind(mode, item.Path)
	if err != nil {
		return domain.Document{}, err
	}

	switch kind {
	case domain.KindMarkdown:
		raw, err := s.notes.Read(ctx, item.Path)
		if err != nil {
			return domain.Document{}, err
		}
		// An unterminated frontmatter block is not worth failing a
		// preview over; show the note as-is.
		_, body, err := markdown.SplitFrontmatter(raw)
		if err != nil {
			body = raw
		}
		return domain.Document{
			ItemID: item.ID,
			Title:  item.Title,
			Kind:   kind,
			Body:   body,
			Path:   item.Path,
		}, nil
	case domain.KindPDF:
		if page <= 0 {
			page = 1
		}
		pdfPage, total, err := s.pdfs.ReadPage(ctx, item.Path, page)
		if err != nil {
			return domain.Document{}, err
		}
		return domain.Document{
			ItemID:     item.ID,
			Title:      item.Title,
			Kind:       kind,
			Body:       pdfPage.Text,
			Page:       pdfPage.Number,
			TotalPages: total,
			Path:       item.Path,
		}, nil
	default:
		return domain.Document{}, fmt.Errorf("unsupported preview kind %q", kind)
	}
}

func (s *PreviewService) OpenExternal(ctx context.Context, poolID, itemID string) (string, error) {
	if s.resolver == nil {
		return "", fmt.Errorf("item resolver is not configured")
	}
	item, err := s.resolver.Resolve(ctx, poolID, itemID)
	if err != nil {
		return "", err
	}
	if item.Path == "" {
		return "", fmt.Errorf("item has no file path")
	}
	if s.launcher == nil {
		return "", fmt.Errorf("external launcher is not configured")
	}
	if err := s.launcher.Open(ctx, item.Path); err != nil {
		return "", err
	}
	return item.Path, nil
}

func resolveKind(mode string, path string) (domain.Kind, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case "", "auto":
	case "markdown":
		return domain.KindMarkdown, nil
	case "pdf":
		return domain.KindPDF, nil
	default:
		return "", fmt.Errorf("invalid preview mode %q", mode)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.KindPDF, nil
	default:
		return domain.KindMarkdown, nil
	}
}
