package out

import (
	"context"
	"fmt"
	"os"

	previewout "mdrank/internal/modules/preview/port/out"
)

type VaultNoteReader struct{}

func NewVaultNoteReader() previewout.NoteReader {
	return &VaultNoteReader{}
}

func (r *VaultNoteReader) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}
