package database

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string, logger *log.Logger) (*sqlx.DB, error) {
	logger.Info("🔌 Connecting to database", "url_prefix", dbURL[:min(30, len(dbURL))]+"...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Error("❌ Database connection failed", "err", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		logger.Error("❌ Database ping failed", "err", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("✅ Database connection successful")
	return db, nil
}

func Migrate(db *sqlx.DB, logger *log.Logger) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			worker_id TEXT UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('worker', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			CHECK (role = 'admin' OR worker_id IS NOT NULL)
		)`,

		// Create dispatch_runs table
		`CREATE TABLE IF NOT EXISTS dispatch_runs (
			id TEXT PRIMARY KEY,
			service_date DATE NOT NULL,
			day TEXT NOT NULL,
			tasks_generated INT NOT NULL DEFAULT 0,
			tasks_inserted INT NOT NULL DEFAULT 0,
			reminders_inserted INT NOT NULL DEFAULT 0,
			issue_count INT NOT NULL DEFAULT 0,
			triggered_by TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (triggered_by) REFERENCES users(id) ON DELETE SET NULL
		)`,

		// Create dispatched_tasks table; one row per task id per service date
		`CREATE TABLE IF NOT EXISTS dispatched_tasks (
			id TEXT NOT NULL,
			service_date DATE NOT NULL,
			dispatch_id TEXT NOT NULL,
			worker_id TEXT NOT NULL,
			building_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('bin_retrieval', 'bin_set_out')),
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			location TEXT NOT NULL,
			collection_day TEXT NOT NULL,
			scheduled_at BIGINT NOT NULL,
			estimated_minutes INT NOT NULL,
			skill_level TEXT NOT NULL,
			instructions TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			PRIMARY KEY (id, service_date),
			FOREIGN KEY (dispatch_id) REFERENCES dispatch_runs(id) ON DELETE CASCADE
		)`,

		// Create dispatched_reminders table
		`CREATE TABLE IF NOT EXISTS dispatched_reminders (
			id TEXT NOT NULL,
			service_date DATE NOT NULL,
			dispatch_id TEXT NOT NULL,
			building_id TEXT NOT NULL,
			building_name TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('set_out', 'retrieve')),
			collection_day TEXT NOT NULL,
			scheduled_at BIGINT NOT NULL,
			instructions TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			PRIMARY KEY (id, service_date),
			FOREIGN KEY (dispatch_id) REFERENCES dispatch_runs(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatch_runs_service_date ON dispatch_runs(service_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatched_tasks_worker_date ON dispatched_tasks(worker_id, service_date)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatched_tasks_building ON dispatched_tasks(building_id)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatched_reminders_date ON dispatched_reminders(service_date, scheduled_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	logger.Info("✅ Database migrations completed", "statements", len(migrations))
	return nil
}
