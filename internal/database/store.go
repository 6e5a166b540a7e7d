package database

import (
	"context"
	"time"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// Store binds the package's query functions to one connection pool.
type Store struct {
	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) SaveDispatch(ctx context.Context, plan dsny.DispatchPlan, triggeredBy *string) (models.DispatchRun, error) {
	return SaveDispatch(ctx, s.DB, plan, triggeredBy)
}

func (s *Store) GetWorkerTasks(ctx context.Context, workerID string, serviceDate time.Time) ([]models.DispatchedTask, error) {
	return GetWorkerTasks(ctx, s.DB, workerID, serviceDate)
}

func (s *Store) GetDispatchedTasks(ctx context.Context, serviceDate time.Time) ([]models.DispatchedTask, error) {
	return GetDispatchedTasks(ctx, s.DB, serviceDate)
}

func (s *Store) GetReminders(ctx context.Context, serviceDate time.Time) ([]models.DispatchedReminder, error) {
	return GetReminders(ctx, s.DB, serviceDate)
}

func (s *Store) ListDispatchRuns(ctx context.Context, limit int) ([]models.DispatchRun, error) {
	return ListDispatchRuns(ctx, s.DB, limit)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return GetUserByEmail(ctx, s.DB, email)
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return CreateUser(ctx, s.DB, user)
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return ListUsers(ctx, s.DB)
}
