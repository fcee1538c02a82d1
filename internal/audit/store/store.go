package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

// Insert writes e through q, normally the *sql.Tx of the mutation it describes.
func Insert(ctx context.Context, q database.Querier, e audit.Entry) error {
	before, err := snapshot(e.Before)
	if err != nil {
		return fmt.Errorf("encoding before snapshot: %w", err)
	}

	after, err := snapshot(e.After)
	if err != nil {
		return fmt.Errorf("encoding after snapshot: %w", err)
	}

	query := `
		INSERT INTO audit_log (actor_id, actor_role, action, entity, entity_id, before_data, after_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	if _, err := q.ExecContext(ctx, query,
		e.ActorID,
		e.Role,
		e.Action,
		e.Entity,
		e.EntityID,
		before,
		after,
	); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

func snapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	return json.Marshal(v)
}
