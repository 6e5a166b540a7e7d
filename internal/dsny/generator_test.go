package dsny

import (
	"sync"
	"testing"
	"time"

	"dsny-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_RetrievalTasksForResponsibleWorkerOnly(t *testing.T) {
	e := newTestEngine(t, testConfig(t))
	g := e.Generator

	tasks := g.GetBinRetrievalTasks("kevin", models.Tuesday)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "bin_retrieval_perry_tuesday", task.ID)
	assert.Equal(t, "DSNY Bin Retrieval - 68 Perry Street", task.Name)
	assert.Equal(t, models.TaskKindBinRetrieval, task.Kind)
	assert.Equal(t, "kevin", task.WorkerID)
	assert.Equal(t, models.Tuesday, task.CollectionDay)
	assert.Equal(t, "08:30", task.ScheduledTime.String())
	assert.Equal(t, "68 Perry Street", task.Location)
	assert.Equal(t,
		"Bring bins back to Under the stoop by 8:30 AM after Tuesday collection. Streams: Trash (Black bins).",
		task.Instructions)

	assert.Empty(t, g.GetBinRetrievalTasks("edwin", models.Monday))
	assert.Empty(t, g.GetBinRetrievalTasks("kevin", models.Monday))
	assert.Equal(t, []string{"bin_retrieval_w17_tuesday"}, taskIDs(g.GetBinRetrievalTasks("edwin", models.Tuesday)))
	assert.Empty(t, g.GetBinRetrievalTasks("angel", models.Tuesday))
	assert.Empty(t, g.GetBinRetrievalTasks("nobody", models.Tuesday))
}

func TestGenerator_EmptyListIsNotNil(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	tasks := e.Generator.GetBinRetrievalTasks("kevin", models.Sunday)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestGenerator_TaskPolicy(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	for _, day := range models.AllCollectionDays {
		for _, tasks := range e.Generator.GetDailyTasks(day) {
			for _, task := range tasks {
				assert.Equal(t, 10*time.Minute, task.EstimatedDuration, task.ID)
				assert.Equal(t, 10, task.EstimatedMinutes(), task.ID)
				assert.Equal(t, models.SkillBasic, task.SkillLevel, task.ID)
				assert.Equal(t, models.TaskCategorySanitation, task.Category, task.ID)
			}
		}
	}
}

func TestGenerator_Idempotent(t *testing.T) {
	e := newTestEngine(t, testConfig(t))
	g := e.Generator

	for _, day := range models.AllCollectionDays {
		assert.Equal(t, g.GetBinRetrievalTasks("edwin", day), g.GetBinRetrievalTasks("edwin", day))
		assert.Equal(t, g.GetBinSetOutReminders(day), g.GetBinSetOutReminders(day))
		assert.Equal(t, g.GetBinRetrievalReminders(day), g.GetBinRetrievalReminders(day))
	}
}

func TestGenerator_SetOutTasksGoToCollectionDayWorker(t *testing.T) {
	e := newTestEngine(t, testConfig(t))
	g := e.Generator

	// Friday evening set-out is for Saturday collection, which is angel's.
	assert.Equal(t, []string{"bin_setout_w17_saturday"}, taskIDs(g.GetBinSetOutTasks("angel", models.Friday)))
	assert.Empty(t, g.GetBinSetOutTasks("edwin", models.Friday))

	tasks := g.GetBinSetOutTasks("kevin", models.Thursday)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, models.TaskKindBinSetOut, task.Kind)
	assert.Equal(t, models.Friday, task.CollectionDay)
	assert.Equal(t, "19:00", task.ScheduledTime.String())
	assert.Equal(t, "DSNY Bin Set-Out - 68 Perry Street", task.Name)
	assert.Equal(t,
		"Set out bins from Under the stoop at the curb after 7:00 PM for Friday collection. Streams: Trash (Black bins); Recycling (Blue bin).",
		task.Instructions)
}

func TestGenerator_SetOutReminders(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	reminders := e.Generator.GetBinSetOutReminders(models.Monday)
	require.Len(t, reminders, 2)

	w17 := reminders[0]
	assert.Equal(t, "w17", w17.BuildingID)
	assert.Equal(t, models.ActionSetOut, w17.Action)
	assert.Equal(t, models.Monday, w17.Day)
	assert.Equal(t, models.Tuesday, w17.CollectionDay)
	assert.Equal(t, "20:00", w17.ScheduledTime.String())
	assert.Contains(t, w17.Instructions, "Sidewalk vault")
	assert.Contains(t, w17.Instructions, "Key is in the lockbox.")

	assert.Equal(t, "perry", reminders[1].BuildingID)

	_, err := uuid.Parse(w17.ID)
	require.NoError(t, err)
	assert.Equal(t, ReminderID("w17", models.ActionSetOut, models.Tuesday), w17.ID)
	assert.NotEqual(t, ReminderID("w17", models.ActionRetrieve, models.Tuesday), w17.ID)

	// Saturday set-out covers nothing, Sunday has no collections.
	assert.Empty(t, e.Generator.GetBinSetOutReminders(models.Saturday))
}

func TestGenerator_RetrievalReminders(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	reminders := e.Generator.GetBinRetrievalReminders(models.Wednesday)
	require.Len(t, reminders, 1)
	r := reminders[0]
	assert.Equal(t, "chambers", r.BuildingID)
	assert.Equal(t, models.ActionRetrieve, r.Action)
	assert.Equal(t, models.Wednesday, r.Day)
	assert.Equal(t, models.Wednesday, r.CollectionDay)
	assert.Equal(t, "08:00", r.ScheduledTime.String())
	assert.Contains(t, r.Instructions, "the bin storage area")

	loc := time.FixedZone("EDT", -4*3600)
	at := r.At(time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, loc), at)
}

func TestGenerator_TodaysTasksUseInjectedCalendar(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	today := e.Generator.GetTodaysBinTasks()
	assert.Len(t, today, 4)
	assert.Equal(t, []string{"bin_retrieval_perry_tuesday"}, taskIDs(today["kevin"]))
	assert.Equal(t, []string{"bin_retrieval_w17_tuesday"}, taskIDs(today["edwin"]))
	assert.Empty(t, today["angel"])
	assert.Empty(t, today["luis"])

	saturday := FixedCalendar{At: time.Date(2026, 10, 24, 10, 0, 0, 0, time.UTC)}
	e = newTestEngine(t, testConfig(t), WithCalendar(saturday))
	today = e.Generator.GetTodaysBinTasks()
	assert.Equal(t, []string{"bin_retrieval_w17_saturday"}, taskIDs(today["angel"]))
	assert.Empty(t, today["edwin"])
}

func TestGenerator_DailyTasksRetrievalThenSetOut(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	daily := e.Generator.GetDailyTasks(models.Tuesday)
	assert.Equal(t, []string{"bin_retrieval_w17_tuesday"}, taskIDs(daily["edwin"]))
	assert.Equal(t, []string{"bin_setout_chambers_wednesday"}, taskIDs(daily["luis"]))

	daily = e.Generator.GetDailyTasks(models.Monday)
	assert.Equal(t, []string{"bin_retrieval_chambers_monday"}, taskIDs(daily["luis"]))
	assert.Equal(t, []string{"bin_setout_perry_tuesday"}, taskIDs(daily["kevin"]))
}

func TestGenerator_WorkerWeek(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	week := e.Generator.GetWorkerWeek("kevin")
	require.Len(t, week, 7)
	assert.Equal(t, []string{"bin_setout_perry_tuesday"}, taskIDs(week[models.Monday]))
	assert.Equal(t, []string{"bin_retrieval_perry_tuesday"}, taskIDs(week[models.Tuesday]))
	assert.Equal(t, []string{"bin_setout_perry_friday"}, taskIDs(week[models.Thursday]))
	assert.Equal(t, []string{"bin_retrieval_perry_friday"}, taskIDs(week[models.Friday]))
	assert.Empty(t, week[models.Sunday])
	assert.Empty(t, week[models.Wednesday])
}

func TestGenerator_ConcurrentCallsAgree(t *testing.T) {
	e := newTestEngine(t, testConfig(t))
	want := e.Generator.GetDailyTasks(models.Friday)

	var wg sync.WaitGroup
	results := make([]map[string][]models.OperationTask, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Generator.GetDailyTasks(models.Friday)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerator_AmbiguousDayYieldsNoTask(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rules = append(cfg.Rules[:0:0], cfg.Rules...)
	cfg.Rules = append(cfg.Rules, models.ResponsibilityRule{BuildingID: "perry", WorkerID: "luis", Days: days(models.Friday)})

	e := newTestEngine(t, cfg)
	g := e.Generator

	assert.Empty(t, g.GetBinRetrievalTasks("kevin", models.Friday))
	assert.Equal(t, []string{"bin_retrieval_chambers_friday"}, taskIDs(g.GetBinRetrievalTasks("luis", models.Friday)))
	assert.Empty(t, g.GetBinSetOutTasks("kevin", models.Thursday))
	assert.Empty(t, g.GetBinSetOutTasks("luis", models.Thursday))

	// Tuesday is still kevin's alone
	assert.Equal(t, []string{"bin_retrieval_perry_tuesday"}, taskIDs(g.GetBinRetrievalTasks("kevin", models.Tuesday)))

	// no duplicate ids reach dispatch
	friday := time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC)
	seen := map[string]int{}
	for _, task := range e.PlanFor(friday).Tasks {
		seen[task.ID]++
		assert.NotEqual(t, "bin_retrieval_perry_friday", task.ID)
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}
