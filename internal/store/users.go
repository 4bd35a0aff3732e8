package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Personality  string
	TotemAnimal  string
	TotemEmoji   string
	TotemTitle   string
	OceanScores  string // raw JSON document of the five OCEAN scores
	CreatedAt    time.Time
}

const userColumns = `id, name, email, password_hash, personality, totem_animal, totem_emoji, totem_title, ocean_scores, created_at`

// CreateUser inserts a new user and returns the assigned id. A duplicate
// email surfaces as the database's unique-violation error.
func (s *Store) CreateUser(ctx context.Context, u User) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, personality, totem_animal, totem_emoji, totem_title, ocean_scores, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		id, u.Name, u.Email, u.PasswordHash, u.Personality, u.TotemAnimal, u.TotemEmoji, u.TotemTitle, u.OceanScores,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Personality,
		&u.TotemAnimal, &u.TotemEmoji, &u.TotemTitle, &u.OceanScores, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
