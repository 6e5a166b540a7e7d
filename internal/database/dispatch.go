package database

import (
	"context"
	"fmt"
	"time"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const dateLayout = "2006-01-02"

// SaveDispatch persists a plan's tasks and reminders in one transaction and
// records the run. Rows already stored for the same id and service date are
// left untouched, so re-running a dispatch for a day inserts nothing new.
func SaveDispatch(ctx context.Context, db *sqlx.DB, plan dsny.DispatchPlan, triggeredBy *string) (models.DispatchRun, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return models.DispatchRun{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	date := plan.ServiceDate.Format(dateLayout)
	run := models.DispatchRun{
		ID:             uuid.New().String(),
		ServiceDate:    plan.ServiceDate,
		Day:            plan.Day.Key(),
		TasksGenerated: len(plan.Tasks),
		IssueCount:     plan.IssueCount,
		TriggeredBy:    triggeredBy,
		CreatedAt:      time.Now().Unix(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dispatch_runs (id, service_date, day, tasks_generated, issue_count, triggered_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, date, run.Day, run.TasksGenerated, run.IssueCount, run.TriggeredBy, run.CreatedAt)
	if err != nil {
		return models.DispatchRun{}, fmt.Errorf("failed to create dispatch run: %w", err)
	}

	taskQuery := `
		INSERT INTO dispatched_tasks (
			id, service_date, dispatch_id, worker_id, building_id, kind, name, category,
			location, collection_day, scheduled_at, estimated_minutes, skill_level, instructions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id, service_date) DO NOTHING
	`
	for _, task := range plan.Tasks {
		res, err := tx.ExecContext(ctx, taskQuery,
			task.ID, date, run.ID, task.WorkerID, task.BuildingID, string(task.Kind), task.Name, string(task.Category),
			task.Location, task.CollectionDay.Key(), plan.TaskTime(task).Unix(), task.EstimatedMinutes(),
			string(task.SkillLevel), task.Instructions, run.CreatedAt,
		)
		if err != nil {
			return models.DispatchRun{}, fmt.Errorf("failed to insert task %s: %w", task.ID, err)
		}
		n, _ := res.RowsAffected()
		run.TasksInserted += int(n)
	}

	reminderQuery := `
		INSERT INTO dispatched_reminders (
			id, service_date, dispatch_id, building_id, building_name, action,
			collection_day, scheduled_at, instructions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id, service_date) DO NOTHING
	`
	for _, r := range plan.Reminders {
		res, err := tx.ExecContext(ctx, reminderQuery,
			r.ID, date, run.ID, r.BuildingID, r.BuildingName, string(r.Action),
			r.CollectionDay.Key(), plan.ReminderTime(r).Unix(), r.Instructions, run.CreatedAt,
		)
		if err != nil {
			return models.DispatchRun{}, fmt.Errorf("failed to insert reminder %s: %w", r.ID, err)
		}
		n, _ := res.RowsAffected()
		run.RemindersInserted += int(n)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE dispatch_runs SET tasks_inserted = $1, reminders_inserted = $2 WHERE id = $3`,
		run.TasksInserted, run.RemindersInserted, run.ID)
	if err != nil {
		return models.DispatchRun{}, fmt.Errorf("failed to update dispatch run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.DispatchRun{}, fmt.Errorf("failed to commit dispatch: %w", err)
	}
	return run, nil
}

// GetWorkerTasks returns a worker's persisted tasks for a service date in
// scheduled order.
func GetWorkerTasks(ctx context.Context, db *sqlx.DB, workerID string, serviceDate time.Time) ([]models.DispatchedTask, error) {
	tasks := []models.DispatchedTask{}
	query := `SELECT * FROM dispatched_tasks
	          WHERE worker_id = $1 AND service_date = $2
	          ORDER BY scheduled_at ASC, id ASC`
	if err := db.SelectContext(ctx, &tasks, query, workerID, serviceDate.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("failed to get worker tasks: %w", err)
	}
	return tasks, nil
}

// GetDispatchedTasks returns every persisted task for a service date.
func GetDispatchedTasks(ctx context.Context, db *sqlx.DB, serviceDate time.Time) ([]models.DispatchedTask, error) {
	tasks := []models.DispatchedTask{}
	query := `SELECT * FROM dispatched_tasks
	          WHERE service_date = $1
	          ORDER BY worker_id ASC, scheduled_at ASC, id ASC`
	if err := db.SelectContext(ctx, &tasks, query, serviceDate.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("failed to get dispatched tasks: %w", err)
	}
	return tasks, nil
}

// GetReminders returns persisted reminders for a service date in firing order.
func GetReminders(ctx context.Context, db *sqlx.DB, serviceDate time.Time) ([]models.DispatchedReminder, error) {
	reminders := []models.DispatchedReminder{}
	query := `SELECT * FROM dispatched_reminders
	          WHERE service_date = $1
	          ORDER BY scheduled_at ASC, building_id ASC`
	if err := db.SelectContext(ctx, &reminders, query, serviceDate.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}

// ListDispatchRuns returns the most recent runs first.
func ListDispatchRuns(ctx context.Context, db *sqlx.DB, limit int) ([]models.DispatchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	runs := []models.DispatchRun{}
	query := `SELECT * FROM dispatch_runs ORDER BY created_at DESC, id ASC LIMIT $1`
	if err := db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list dispatch runs: %w", err)
	}
	return runs, nil
}
