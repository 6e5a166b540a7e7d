package database

import (
	"context"
	"errors"
	"fmt"

	"dsny-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrUserExists is returned when the email or worker already has a login.
var ErrUserExists = errors.New("user already exists")

// CreateUser inserts a login. The password must already be hashed.
func CreateUser(ctx context.Context, db *sqlx.DB, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (id, worker_id, email, password, name, role)
		VALUES (:id, :worker_id, :email, :password, :name, :role)
		RETURNING created_at, updated_at
	`
	rows, err := db.NamedQueryContext(ctx, query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return models.User{}, fmt.Errorf("failed to read user timestamps: %w", err)
		}
	}
	return user, rows.Err()
}

// ListUsers returns every login, admins first.
func ListUsers(ctx context.Context, db *sqlx.DB) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT * FROM users ORDER BY role, email`
	if err := db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
