package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Status      string
	CreatedAt   time.Time
}

func (s *Store) CreateGoal(ctx context.Context, userID uuid.UUID, description, status string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO goals (id, user_id, description, status, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, userID, description, status,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert goal: %w", err)
	}
	return id, nil
}

func (s *Store) ListGoalsByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, description, status, created_at
		FROM goals WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
