package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"schoolscout-engine/internal/domain"
)

// UpsertSchool adds or refreshes an imported program in the local catalog.
// Reports whether the id was newly added.
func UpsertSchool(ctx context.Context, db *sql.DB, s domain.School) (added bool, err error) {
	data, err := json.Marshal(s)
	if err != nil {
		return false, fmt.Errorf("marshal school %s: %w", s.ID, err)
	}

	var exists int
	known := db.QueryRowContext(ctx, `SELECT 1 FROM catalog WHERE id = ? LIMIT 1;`, s.ID).Scan(&exists) == nil

	// Upsert so fetched_at moves forward for re-seen programs; PruneCatalog
	// relies on that to age out only entries gone from the upstream source.
	_, err = db.ExecContext(ctx, `
INSERT INTO catalog (id, name, state, data, fetched_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name, state = excluded.state,
  data = excluded.data, fetched_at = excluded.fetched_at;`,
		s.ID, s.Name, s.State, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert school: %w", err)
	}
	return !known, nil
}

// ListCatalog returns every imported program, ordered by name. Rows whose
// stored JSON no longer parses are skipped rather than failing the read.
func ListCatalog(ctx context.Context, db *sql.DB) ([]domain.School, error) {
	rows, err := db.QueryContext(ctx, `SELECT data FROM catalog ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var out []domain.School
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var s domain.School
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PruneCatalog drops imported programs not re-seen within the retention
// window, so entries removed upstream eventually age out.
func PruneCatalog(db *sql.DB, olderThan time.Duration) (deleted int64, err error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	res, err := db.Exec(`DELETE FROM catalog WHERE fetched_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune catalog: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
