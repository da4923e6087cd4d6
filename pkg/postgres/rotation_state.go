package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

// GetRotationState returns the stored cursor, 0 before the first run
func (d *DB) GetRotationState(ctx context.Context) (scheduler.RotationState, error) {
	var cursor int
	err := d.pool.QueryRow(ctx, `SELECT position FROM rotation_state WHERE id = 1`).Scan(&cursor)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rotation state: %w", err)
	}
	return scheduler.RotationState(cursor), nil
}

// SaveRotationState overwrites the stored cursor
func (d *DB) SaveRotationState(ctx context.Context, state scheduler.RotationState) error {
	if _, err := d.pool.Exec(ctx, upsertRotationStateSQL, int(state)); err != nil {
		return fmt.Errorf("failed to save rotation state: %w", err)
	}
	return nil
}

const upsertRotationStateSQL = `
	INSERT INTO rotation_state (id, position, updated_at)
	VALUES (1, $1, NOW())
	ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, updated_at = EXCLUDED.updated_at
`
