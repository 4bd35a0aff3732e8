package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ficachi/omeyo-goal-app/internal/footprint"
)

type Footprint struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	PathID      *uuid.UUID
	Action      string
	DueTime     string
	DueDate     time.Time
	IsCompleted bool
	Priority    int
	CreatedAt   time.Time
}

// CreateFootprint writes one row for a successfully extracted action item.
// pathID is an optional grouping; nil means the footprint is unassigned.
func (s *Store) CreateFootprint(ctx context.Context, userID uuid.UUID, pathID *uuid.UUID, item footprint.ActionItem) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO footprints (id, user_id, path_id, action, due_time, due_date, is_completed, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		id, userID, pathID, item.Action, item.DueTime, item.DueDate, item.IsCompleted, item.Priority,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert footprint: %w", err)
	}
	return id, nil
}

func (s *Store) ListFootprintsByUser(ctx context.Context, userID uuid.UUID) ([]Footprint, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, path_id, action, due_time, due_date, is_completed, priority, created_at
		FROM footprints WHERE user_id = $1 ORDER BY due_date, priority`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query footprints: %w", err)
	}
	defer rows.Close()

	var fps []Footprint
	for rows.Next() {
		var f Footprint
		if err := rows.Scan(&f.ID, &f.UserID, &f.PathID, &f.Action, &f.DueTime, &f.DueDate, &f.IsCompleted, &f.Priority, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan footprint: %w", err)
		}
		fps = append(fps, f)
	}
	return fps, rows.Err()
}

// SetFootprintCompleted flips the completion flag. Scoped to the owning
// user so one user cannot complete another's footprint.
func (s *Store) SetFootprintCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE footprints SET is_completed = $1 WHERE id = $2 AND user_id = $3`,
		completed, id, userID,
	)
	if err != nil {
		return fmt.Errorf("update footprint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("footprint %s not found", id)
	}
	return nil
}
