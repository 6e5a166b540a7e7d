package handlers

import (
	"context"
	"net/http"
	"time"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/middleware"
	"dsny-backend/internal/models"
	"dsny-backend/pkg/utils"

	"github.com/charmbracelet/log"
)

// DispatchStore persists dispatched plans and reads them back.
type DispatchStore interface {
	SaveDispatch(ctx context.Context, plan dsny.DispatchPlan, triggeredBy *string) (models.DispatchRun, error)
	GetWorkerTasks(ctx context.Context, workerID string, serviceDate time.Time) ([]models.DispatchedTask, error)
	GetDispatchedTasks(ctx context.Context, serviceDate time.Time) ([]models.DispatchedTask, error)
	GetReminders(ctx context.Context, serviceDate time.Time) ([]models.DispatchedReminder, error)
	ListDispatchRuns(ctx context.Context, limit int) ([]models.DispatchRun, error)
}

// Dispatch materializes the tasks and reminders for ?date= (default today)
// and stores them. Re-running for the same date inserts nothing new.
func Dispatch(engine *dsny.Engine, store DispatchStore, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := queryDate(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var triggeredBy *string
		if claims, ok := middleware.GetUserFromContext(r); ok {
			triggeredBy = &claims.UserID
		}

		plan := engine.PlanFor(date)
		run, err := store.SaveDispatch(r.Context(), plan, triggeredBy)
		if err != nil {
			logger.Error("❌ Dispatch failed", "service_date", date.Format("2006-01-02"), "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to dispatch tasks")
			return
		}

		logger.Info("📋 Dispatched DSNY tasks",
			"service_date", date.Format("2006-01-02"),
			"day", plan.Day.Key(),
			"tasks_generated", run.TasksGenerated,
			"tasks_inserted", run.TasksInserted,
			"reminders_inserted", run.RemindersInserted)
		utils.RespondSuccess(w, run)
	}
}

// GetDispatched returns stored tasks for ?date=. Workers see their own tasks;
// admins see every task and the day's reminders.
func GetDispatched(engine *dsny.Engine, store DispatchStore, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		date, err := queryDate(r, engine)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if !claims.IsAdmin() {
			tasks, err := store.GetWorkerTasks(r.Context(), claims.WorkerID, date)
			if err != nil {
				logger.Error("❌ Failed to load dispatched tasks", "worker_id", claims.WorkerID, "err", err)
				utils.RespondError(w, http.StatusInternalServerError, "Failed to load tasks")
				return
			}
			utils.RespondSuccess(w, map[string]interface{}{
				"service_date": date.Format("2006-01-02"),
				"tasks":        tasks,
			})
			return
		}

		tasks, err := store.GetDispatchedTasks(r.Context(), date)
		if err != nil {
			logger.Error("❌ Failed to load dispatched tasks", "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load tasks")
			return
		}
		reminders, err := store.GetReminders(r.Context(), date)
		if err != nil {
			logger.Error("❌ Failed to load reminders", "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load reminders")
			return
		}
		utils.RespondSuccess(w, map[string]interface{}{
			"service_date": date.Format("2006-01-02"),
			"tasks":        tasks,
			"reminders":    reminders,
		})
	}
}

// ListDispatchRuns returns recent dispatch runs, newest first.
func ListDispatchRuns(store DispatchStore, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := store.ListDispatchRuns(r.Context(), 50)
		if err != nil {
			logger.Error("❌ Failed to list dispatch runs", "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to list dispatch runs")
			return
		}
		utils.RespondSuccess(w, runs)
	}
}
