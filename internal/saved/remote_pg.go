package saved

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRemote mirrors saved/target state to the authenticated store,
// one row per (user_id, school_id).
type PostgresRemote struct {
	Pool *pgxpool.Pool
}

func (r PostgresRemote) Upsert(ctx context.Context, userID, schoolID string, isTarget bool) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO saved_schools (user_id, school_id, is_target, status, updated_at)
		 VALUES ($1, $2, $3, 'ACTIVE', NOW())
		 ON CONFLICT (user_id, school_id) DO UPDATE
		 SET is_target = $3, status = 'ACTIVE', updated_at = NOW()`,
		userID, schoolID, isTarget,
	)
	if err != nil {
		return fmt.Errorf("saved upsert: %w", err)
	}
	return nil
}

func (r PostgresRemote) Delete(ctx context.Context, userID, schoolID string) error {
	_, err := r.Pool.Exec(ctx,
		`DELETE FROM saved_schools WHERE user_id = $1 AND school_id = $2`,
		userID, schoolID,
	)
	if err != nil {
		return fmt.Errorf("saved delete: %w", err)
	}
	return nil
}
