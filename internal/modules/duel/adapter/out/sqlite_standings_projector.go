package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mdrank/internal/modules/duel/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStandingsProjector mirrors rating records into a standings
// table so rankings can be queried without loading a session.
type SQLiteStandingsProjector struct {
	db *sql.DB
}

func NewSQLiteStandingsProjector(dbPath string) (*SQLiteStandingsProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteStandingsProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SQLiteStandingsProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS standings (
  pool_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  display_name TEXT NOT NULL,
  rating REAL NOT NULL,
  games INTEGER NOT NULL,
  last_compared TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (pool_id, item_id)
);
CREATE INDEX IF NOT EXISTS idx_standings_pool_rating ON standings(pool_id, rating);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create standings table: %w", err)
	}
	return nil
}

func (p *SQLiteStandingsProjector) Upsert(ctx context.Context, poolID string, row domain.StandingRow) error {
	const stmt = `
INSERT INTO standings (pool_id, item_id, display_name, rating, games, last_compared)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(pool_id, item_id) DO UPDATE SET
  display_name = excluded.display_name,
  rating = excluded.rating,
  games = excluded.games,
  last_compared = excluded.last_compared;
`
	if _, err := p.db.ExecContext(ctx, stmt, poolID, row.ItemID, row.DisplayName, row.Rating, row.Games, row.Last); err != nil {
		return fmt.Errorf("upsert standing: %w", err)
	}
	return nil
}

func (p *SQLiteStandingsProjector) Top(ctx context.Context, poolID string, limit int) ([]domain.StandingRow, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := p.db.QueryContext(ctx, `
SELECT item_id, display_name, rating, games, last_compared
FROM standings
WHERE pool_id = ?
ORDER BY rating DESC, display_name ASC
LIMIT ?;
`, poolID, limit)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StandingRow, 0)
	for rows.Next() {
		row := domain.StandingRow{}
		if err := rows.Scan(&row.ItemID, &row.DisplayName, &row.Rating, &row.Games, &row.Last); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standings: %w", err)
	}
	return out, nil
}

func (p *SQLiteStandingsProjector) Reset(ctx context.Context, poolID string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM standings WHERE pool_id = ?;`, poolID); err != nil {
		return fmt.Errorf("reset standings: %w", err)
	}
	return nil
}
