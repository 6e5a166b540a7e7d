package database

import (
	"context"
	"fmt"
	"strings"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminEmail is the login created for the seeded admin account.
const DefaultAdminEmail = "admin@dsny.local"

// SeedUsers creates a worker login for every roster member and one admin.
// Existing emails are skipped. An empty password skips that group.
func SeedUsers(ctx context.Context, db *sqlx.DB, roster []models.Worker, workerPassword, adminPassword string, logger *log.Logger) error {
	var users []models.User

	if workerPassword == "" {
		logger.Warn("⚠️  SEED_WORKER_PASSWORD not set, skipping worker logins")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(workerPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash worker password: %w", err)
		}
		for _, w := range roster {
			workerID := w.ID
			users = append(users, models.User{
				ID:       uuid.New().String(),
				WorkerID: &workerID,
				Email:    workerEmail(w),
				Password: string(hash),
				Name:     w.Name,
				Role:     models.RoleWorker,
			})
		}
	}

	if adminPassword == "" {
		logger.Warn("⚠️  SEED_ADMIN_PASSWORD not set, skipping admin login")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		users = append(users, models.User{
			ID:       uuid.New().String(),
			Email:    DefaultAdminEmail,
			Password: string(hash),
			Name:     "Operations Admin",
			Role:     models.RoleAdmin,
		})
	}

	created := 0
	for _, user := range users {
		query := `
			INSERT INTO users (id, worker_id, email, password, name, role)
			VALUES (:id, :worker_id, :email, :password, :name, :role)
			ON CONFLICT DO NOTHING
		`
		res, err := db.NamedExecContext(ctx, query, user)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			created++
			logger.Info("  ✓ Created user", "email", user.Email, "role", user.Role)
		}
	}

	logger.Info("🌱 User seeding complete", "created", created, "skipped", len(users)-created)
	return nil
}

// GetUserByEmail loads a login by email.
func GetUserByEmail(ctx context.Context, db *sqlx.DB, email string) (models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE email = $1`
	if err := db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func workerEmail(w models.Worker) string {
	if e := strings.ToLower(strings.TrimSpace(w.Email)); e != "" {
		return e
	}
	return w.ID + "@dsny.local"
}
