package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mdrank/internal/modules/rivals/domain"

	_ "modernc.org/sqlite"
)

// SQLiteRivalryStore keeps one row per pool and canonical pair. Beat
// paths are breadth-first searches over the directed "has beaten"
// edges the rows imply. Display labels are resolved from the
// standings table when it shares the database, falling back to raw
// ids when it does not.
type SQLiteRivalryStore struct {
	db *sql.DB
}

func NewSQLiteRivalryStore(dbPath string) (*SQLiteRivalryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteRivalryStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteRivalryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS rivalries (
  pool_id TEXT NOT NULL,
  item_a TEXT NOT NULL,
  item_b TEXT NOT NULL,
  wins_a INTEGER NOT NULL DEFAULT 0,
  wins_b INTEGER NOT NULL DEFAULT 0,
  draws INTEGER NOT NULL DEFAULT 0,
  last_at INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (pool_id, item_a, item_b)
);
CREATE INDEX IF NOT EXISTS idx_rivalries_pool ON rivalries(pool_id);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create rivalries table: %w", err)
	}
	return nil
}

func (s *SQLiteRivalryStore) Record(ctx context.Context, poolID, itemA, itemB string, score float64, at int64) error {
	first, second, swapped := domain.OrderPair(itemA, itemB)
	effective := score
	if swapped {
		effective = 1 - score
	}
	var winsA, winsB, draws int
	switch effective {
	case 1:
		winsA = 1
	case 0:
		winsB = 1
	default:
		draws = 1
	}
	const stmt = `
INSERT INTO rivalries (pool_id, item_a, item_b, wins_a, wins_b, draws, last_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(pool_id, item_a, item_b) DO UPDATE SET
  wins_a = wins_a + excluded.wins_a,
  wins_b = wins_b + excluded.wins_b,
  draws = draws + excluded.draws,
  last_at = MAX(last_at, excluded.last_at);
`
	if _, err := s.db.ExecContext(ctx, stmt, poolID, first, second, winsA, winsB, draws, at); err != nil {
		return fmt.Errorf("record rivalry: %w", err)
	}
	return nil
}

func (s *SQLiteRivalryStore) Get(ctx context.Context, poolID, itemA, itemB string) (domain.Rivalry, error) {
	first, second, _ := domain.OrderPair(itemA, itemB)
	rivalry := domain.Rivalry{PoolID: poolID, ItemA: first, ItemB: second}
	err := s.db.QueryRowContext(ctx, `
SELECT wins_a, wins_b, draws, last_at
FROM rivalries
WHERE pool_id = ? AND item_a = ? AND item_b = ?;
`, poolID, first, second).Scan(&rivalry.WinsA, &rivalry.WinsB, &rivalry.Draws, &rivalry.LastAt)
	if err != nil && err != sql.ErrNoRows {
		return domain.Rivalry{}, fmt.Errorf("get rivalry: %w", err)
	}
	s.applyLabels(ctx, poolID, []*domain.Rivalry{&rivalry})
	return rivalry, nil
}

func (s *SQLiteRivalryStore) List(ctx context.Context, poolID string, limit int) ([]domain.Rivalry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT item_a, item_b, wins_a, wins_b, draws, last_at
FROM rivalries
WHERE pool_id = ?
ORDER BY (wins_a + wins_b + draws) DESC, item_a ASC, item_b ASC
LIMIT ?;
`, poolID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rivalries: %w", err)
	}
	return s.collect(ctx, poolID, rows)
}

// Opponents returns every rivalry involving the item, most played
// first.
func (s *SQLiteRivalryStore) Opponents(ctx context.Context, poolID, itemID string) ([]domain.Rivalry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT item_a, item_b, wins_a, wins_b, draws, last_at
FROM rivalries
WHERE pool_id = ? AND (item_a = ? OR item_b = ?)
ORDER BY (wins_a + wins_b + draws) DESC, item_a ASC, item_b ASC;
`, poolID, itemID, itemID)
	if err != nil {
		return nil, fmt.Errorf("list opponents: %w", err)
	}
	return s.collect(ctx, poolID, rows)
}

func (s *SQLiteRivalryStore) collect(ctx context.Context, poolID string, rows *sql.Rows) ([]domain.Rivalry, error) {
	defer rows.Close()

	out := make([]domain.Rivalry, 0)
	for rows.Next() {
		rivalry := domain.Rivalry{PoolID: poolID}
		if err := rows.Scan(&rivalry.ItemA, &rivalry.ItemB, &rivalry.WinsA, &rivalry.WinsB, &rivalry.Draws, &rivalry.LastAt); err != nil {
			return nil, fmt.Errorf("scan rivalry: %w", err)
		}
		out = append(out, rivalry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rivalries: %w", err)
	}
	refs := make([]*domain.Rivalry, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	s.applyLabels(ctx, poolID, refs)
	return out, nil
}

func (s *SQLiteRivalryStore) BeatPath(ctx context.Context, poolID, fromID, toID string) ([]domain.PathNode, error) {
	fromID = strings.TrimSpace(fromID)
	toID = strings.TrimSpace(toID)
	if fromID == "" || toID == "" || fromID == toID {
		return []domain.PathNode{}, nil
	}
	adjacency, err := s.loadBeatEdges(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if _, ok := adjacency[fromID]; !ok {
		return []domain.PathNode{}, nil
	}

	queue := []string{fromID}
	visited := map[string]struct{}{fromID: {}}
	prev := map[string]string{}
	found := false

	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]
		for _, nextID := range sortedIDs(adjacency[current]) {
			if _, ok := visited[nextID]; ok {
				continue
			}
			visited[nextID] = struct{}{}
			prev[nextID] = current
			if nextID == toID {
				found = true
				break
			}
			queue = append(queue, nextID)
		}
	}
	if !found {
		return []domain.PathNode{}, nil
	}

	pathIDs := []string{toID}
	for current := toID; current != fromID; {
		parent, ok := prev[current]
		if !ok {
			return []domain.PathNode{}, nil
		}
		pathIDs = append(pathIDs, parent)
		current = parent
	}
	reverse(pathIDs)

	labels := s.lookupLabels(ctx, poolID, pathIDs)
	nodes := make([]domain.PathNode, len(pathIDs))
	for i, id := range pathIDs {
		label := labels[id]
		if strings.TrimSpace(label) == "" {
			label = id
		}
		nodes[i] = domain.PathNode{ItemID: id, Label: label}
	}
	return nodes, nil
}

func (s *SQLiteRivalryStore) Reset(ctx context.Context, poolID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rivalries WHERE pool_id = ?;`, poolID); err != nil {
		return fmt.Errorf("reset rivalries: %w", err)
	}
	return nil
}

// loadBeatEdges builds the directed victory graph: an edge x -> y
// exists when x has beaten y more often than y has beaten x.
func (s *SQLiteRivalryStore) loadBeatEdges(ctx context.Context, poolID string) (map[string]map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT item_a, item_b, wins_a, wins_b
FROM rivalries
WHERE pool_id = ?;
`, poolID)
	if err != nil {
		return nil, fmt.Errorf("load beat edges: %w", err)
	}
	defer rows.Close()

	adjacency := map[string]map[string]struct{}{}
	addEdge := func(from, to string) {
		if adjacency[from] == nil {
			adjacency[from] = map[string]struct{}{}
		}
		adjacency[from][to] = struct{}{}
		if adjacency[to] == nil {
			adjacency[to] = map[string]struct{}{}
		}
	}
	for rows.Next() {
		var itemA, itemB string
		var winsA, winsB int
		if err := rows.Scan(&itemA, &itemB, &winsA, &winsB); err != nil {
			return nil, fmt.Errorf("scan beat edge: %w", err)
		}
		if winsA > winsB {
			addEdge(itemA, itemB)
		}
		if winsB > winsA {
			addEdge(itemB, itemA)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beat edges: %w", err)
	}
	return adjacency, nil
}

func (s *SQLiteRivalryStore) applyLabels(ctx context.Context, poolID string, rivalries []*domain.Rivalry) {
	ids := make([]string, 0, len(rivalries)*2)
	for _, rivalry := range rivalries {
		ids = append(ids, rivalry.ItemA, rivalry.ItemB)
	}
	labels := s.lookupLabels(ctx, poolID, ids)
	for _, rivalry := range rivalries {
		rivalry.LabelA = labelOr(labels, rivalry.ItemA)
		rivalry.LabelB = labelOr(labels, rivalry.ItemB)
	}
}

// lookupLabels resolves display names from the standings projection
// when it shares the database. A missing table is not an error; the
// caller falls back to ids.
func (s *SQLiteRivalryStore) lookupLabels(ctx context.Context, poolID string, ids []string) map[string]string {
	out := map[string]string{}
	if len(ids) == 0 {
		return out
	}
	placeholders := make([]string, 0, len(ids))
	args := []any{poolID}
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := fmt.Sprintf(
		"SELECT item_id, display_name FROM standings WHERE pool_id = ? AND item_id IN (%s)",
		strings.Join(placeholders, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return out
		}
		out[id] = name
	}
	return out
}

func labelOr(labels map[string]string, id string) string {
	if label := labels[id]; strings.TrimSpace(label) != "" {
		return label
	}
	return id
}

func sortedIDs(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func reverse(ids []string) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
