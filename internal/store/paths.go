package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Path is a named, coloured grouping of footprints.
type Path struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
}

func (s *Store) CreatePath(ctx context.Context, userID uuid.UUID, name, color string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO paths (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, userID, name, color,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert path: %w", err)
	}
	return id, nil
}

func (s *Store) ListPathsByUser(ctx context.Context, userID uuid.UUID) ([]Path, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, color, created_at
		FROM paths WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	var paths []Path
	for rows.Next() {
		var p Path
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
