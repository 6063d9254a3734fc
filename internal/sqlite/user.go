package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/estflow/internal/domain/user"
)

// UserRepository is the SQLite user directory store
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create adds a directory user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (id, name, email, role) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// List returns all directory users
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, role FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
