package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	"mdrank/internal/platform/config"
	"mdrank/internal/platform/markdown"
)

// VaultNotePublisher writes a pool's standings into a ranking note in
// the vault. Only the marker-delimited block is regenerated, so notes
// can carry hand-written context around the table.
type VaultNotePublisher struct {
	vaultPath string
	cfg       *config.Config
}

func NewVaultNotePublisher(vaultPath string, cfg *config.Config) duelout.NotePublisher {
	return &VaultNotePublisher{vaultPath: vaultPath, cfg: cfg}
}

func (p *VaultNotePublisher) Publish(_ context.Context, poolID string, rows []domain.StandingRow) (string, error) {
	pool, ok := p.cfg.PoolByID(poolID)
	if !ok {
		return "", fmt.Errorf("unknown pool %s", poolID)
	}
	notePath := filepath.Join(p.vaultPath, pool.Name+" Rankings.md")

	body := "# " + pool.Name + " Rankings\n"
	if existing, err := os.ReadFile(notePath); err == nil {
		body = string(existing)
	}
	body = markdown.ReplaceManagedBlock(body, domain.ManagedStandingsStart, domain.ManagedStandingsEnd, renderTable(rows))
	if err := os.WriteFile(notePath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write ranking note: %w", err)
	}
	return notePath, nil
}

func renderTable(rows []domain.StandingRow) string {
	var b strings.Builder
	b.WriteString("| # | Item | Rating | Games | Last |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		last := row.Last
		if last == "" {
			last = "-"
		}
		fmt.Fprintf(&b, "| %d | [[%s]] | %.0f | %d | %s |\n", row.Rank, noteLink(row.ItemID, row.DisplayName), row.Rating, row.Games, last)
	}
	return strings.TrimRight(b.String(), "\n")
}

// noteLink renders a wikilink target with a display alias when the
// display name differs from the note stem.
func noteLink(itemID, displayName string) string {
	target := strings.TrimSuffix(itemID, filepath.Ext(itemID))
	stem := target
	if idx := strings.LastIndex(stem, "/"); idx >= 0 {
		stem = stem[idx+1:]
	}
	if displayName == "" || displayName == stem {
		return target
	}
	return target + "|" + displayName
}
