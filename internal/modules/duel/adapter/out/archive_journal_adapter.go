package out

import (
	"context"

	archivedto "mdrank/internal/modules/archive/dto"
	archivein "mdrank/internal/modules/archive/port/in"
	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
)

// ArchiveJournalAdapter mirrors every recorded outcome into the
// archive module's durable journal.
type ArchiveJournalAdapter struct {
	archive archivein.Usecase
}

func NewArchiveJournalAdapter(archive archivein.Usecase) duelout.Journal {
	return &ArchiveJournalAdapter{archive: archive}
}

func (a *ArchiveJournalAdapter) Append(ctx context.Context, poolID string, event domain.ComparisonEvent) error {
	_, err := a.archive.AppendEntry(ctx, archivedto.AppendInput{
		Pool: poolID,
		Event: archivedto.EventInput{
			At:    event.At,
			ItemA: event.ItemA,
			ItemB: event.ItemB,
			Score: float64(event.Score),
		},
	})
	return err
}
