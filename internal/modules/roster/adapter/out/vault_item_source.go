package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mdrank/internal/modules/roster/domain"
	rosterout "mdrank/internal/modules/roster/port/out"
	"mdrank/internal/platform/markdown"
)

// VaultItemSource scans a pool's folder for markdown notes carrying
// the pool's rating property. Notes without a usable numeric value,
// and notes whose frontmatter does not parse, are skipped. A note
// named <file>.pdf.md is a sidecar: it admits the PDF attachment next
// to it instead of itself, so attachments compare alongside notes.
type VaultItemSource struct {
	vaultPath string
}

func NewVaultItemSource(vaultPath string) rosterout.ItemSource {
	return &VaultItemSource{vaultPath: vaultPath}
}

func (s *VaultItemSource) List(_ context.Context, pool domain.Pool) ([]domain.Item, error) {
	root := s.vaultPath
	if strings.TrimSpace(pool.Folder) != "" {
		root = filepath.Join(s.vaultPath, pool.Folder)
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return []domain.Item{}, nil
	}

	items := make([]domain.Item, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil
		}
		rating, ok := asNumber(meta[pool.Property])
		if !ok {
			return nil
		}
		target := path
		if base := strings.TrimSuffix(path, filepath.Ext(path)); strings.EqualFold(filepath.Ext(base), ".pdf") {
			// Sidecar rating for an attachment; no attachment, no item.
			if _, statErr := os.Stat(base); statErr != nil {
				return nil
			}
			target = base
		}
		rel, relErr := filepath.Rel(s.vaultPath, target)
		if relErr != nil {
			return fmt.Errorf("relativize %s: %w", target, relErr)
		}
		item := domain.Item{
			ID:          filepath.ToSlash(rel),
			DisplayName: displayName(meta, target),
			Rating:      rating,
			PoolID:      pool.ID,
		}
		if item.Validate() != nil {
			return nil
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan pool folder: %w", err)
	}

	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	return items, nil
}

func displayName(meta map[string]any, path string) string {
	if title := asString(meta["title"]); strings.TrimSpace(title) != "" {
		return title
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

// asNumber reports whether the frontmatter value is usable as a
// rating. Numeric strings count; booleans, lists, and nil do not.
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case string:
		var out float64
		if _, err := fmt.Sscanf(strings.TrimSpace(x), "%f", &out); err != nil {
			return 0, false
		}
		return out, true
	default:
		return 0, false
	}
}
