package database

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"dsny-backend/internal/config"
	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testDB connects to TEST_DATABASE_URL and resets the schema. Tests skip
// when it is unset.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	logger := log.New(io.Discard)
	db, err := Connect(url, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"dispatched_reminders", "dispatched_tasks", "dispatch_runs", "users"} {
		_, err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
		require.NoError(t, err)
	}
	require.NoError(t, Migrate(db, logger))
	return db
}

func shippedEngine(t *testing.T, at time.Time) *dsny.Engine {
	t.Helper()
	f, err := config.Default()
	require.NoError(t, err)
	cfg, err := f.EngineConfig()
	require.NoError(t, err)
	loc, err := f.Location()
	require.NoError(t, err)

	e, err := dsny.NewEngine(cfg,
		dsny.WithLogger(dsny.DiscardLogger()),
		dsny.WithStrictValidation(true),
		dsny.WithCalendar(dsny.FixedCalendar{At: at.In(loc)}))
	require.NoError(t, err)
	return e
}

func TestSaveDispatch_Idempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	e := shippedEngine(t, time.Date(2026, 10, 20, 13, 0, 0, 0, time.UTC))
	plan := e.PlanToday()
	require.NotEmpty(t, plan.Tasks)

	first, err := SaveDispatch(ctx, db, plan, nil)
	require.NoError(t, err)
	assert.Equal(t, len(plan.Tasks), first.TasksInserted)
	assert.Equal(t, len(plan.Reminders), first.RemindersInserted)
	assert.Equal(t, "tuesday", first.Day)

	second, err := SaveDispatch(ctx, db, plan, nil)
	require.NoError(t, err)
	assert.Zero(t, second.TasksInserted)
	assert.Zero(t, second.RemindersInserted)
	assert.Equal(t, len(plan.Tasks), second.TasksGenerated)

	runs, err := ListDispatchRuns(ctx, db, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	kevin, err := GetWorkerTasks(ctx, db, "kevin", plan.ServiceDate)
	require.NoError(t, err)
	require.Len(t, kevin, 1)
	assert.Equal(t, "bin_retrieval_6_tuesday", kevin[0].ID)
	assert.Equal(t, 10, kevin[0].EstimatedMinutes)
	assert.Equal(t, plan.TaskTime(plan.Tasks[0]).Unix(), kevin[0].ScheduledAt)

	reminders, err := GetReminders(ctx, db, plan.ServiceDate)
	require.NoError(t, err)
	assert.Len(t, reminders, len(plan.Reminders))

	all, err := GetDispatchedTasks(ctx, db, plan.ServiceDate)
	require.NoError(t, err)
	assert.Len(t, all, len(plan.Tasks))
}

func TestSeedUsers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	logger := log.New(io.Discard)

	f, err := config.Default()
	require.NoError(t, err)
	cfg, err := f.EngineConfig()
	require.NoError(t, err)

	require.NoError(t, SeedUsers(ctx, db, cfg.Workers, "worker-pass", "admin-pass", logger))
	require.NoError(t, SeedUsers(ctx, db, cfg.Workers, "worker-pass", "admin-pass", logger))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, len(cfg.Workers)+1, count)

	kevin, err := GetUserByEmail(ctx, db, "Kevin.Dutan@francomanagement.com")
	require.NoError(t, err)
	require.NotNil(t, kevin.WorkerID)
	assert.Equal(t, "kevin", *kevin.WorkerID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(kevin.Password), []byte("worker-pass")))

	admin, err := GetUserByEmail(ctx, db, DefaultAdminEmail)
	require.NoError(t, err)
	assert.Nil(t, admin.WorkerID)
	assert.Equal(t, "admin", admin.Role)
}

func TestCreateAndListUsers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	angel := "angel"
	created, err := CreateUser(ctx, db, models.User{
		ID: uuid.New().String(), WorkerID: &angel, Email: "angel@example.com",
		Password: "hash", Name: "Angel Guirachocha", Role: models.RoleWorker,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.CreatedAt)

	_, err = CreateUser(ctx, db, models.User{
		ID: uuid.New().String(), WorkerID: &angel, Email: "angel2@example.com",
		Password: "hash", Name: "Angel Again", Role: models.RoleWorker,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = CreateUser(ctx, db, models.User{
		ID: uuid.New().String(), Email: "boss@example.com",
		Password: "hash", Name: "Boss", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	users, err := ListUsers(ctx, db)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}
