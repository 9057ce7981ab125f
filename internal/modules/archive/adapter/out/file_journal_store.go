package out

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mdrank/internal/modules/archive/domain"
	archiveout "mdrank/internal/modules/archive/port/out"
)

// FileJournalStore keeps one JSONL file per pool. Lines are appended,
// never rewritten; a malformed line fails the whole read so a damaged
// journal is noticed instead of silently shortened.
type FileJournalStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileJournalStore(dir string) archiveout.JournalStore {
	return &FileJournalStore{dir: dir}
}

func (s *FileJournalStore) path(pool string) string {
	return filepath.Join(s.dir, "journal-"+pool+".jsonl")
}

func (s *FileJournalStore) Append(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	file, err := os.OpenFile(s.path(entry.Pool), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	if _, err := file.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

func (s *FileJournalStore) List(_ context.Context, pool string) ([]domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := os.Open(s.path(pool))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.JournalEntry{}, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	out := []domain.JournalEntry{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		entry := domain.JournalEntry{}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode journal line: %w", err)
		}
		out = append(out, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return out, nil
}
