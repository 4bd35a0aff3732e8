package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Role      string // "user" or "model"
	Content   string
	CreatedAt time.Time
}

func (s *Store) AppendConversationTurn(ctx context.Context, userID uuid.UUID, role, content string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversations (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, userID, role, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert conversation turn: %w", err)
	}
	return id, nil
}

func (s *Store) ListConversationByUser(ctx context.Context, userID uuid.UUID, limit int) ([]ConversationTurn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, role, content, created_at
		FROM conversations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	var turns []ConversationTurn
	for rows.Next() {
		var t ConversationTurn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
