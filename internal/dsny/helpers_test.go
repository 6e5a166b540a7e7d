package dsny

import (
	"testing"
	"time"

	"dsny-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	tod, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func days(d ...models.CollectionDay) []models.CollectionDay {
	return d
}

var weekdays = days(models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday)

// testConfig is a small synthetic portfolio:
//   - "perry" 68 Perry Street, 6 units, Tue/Fri, kevin every day
//   - "w17"   136 West 17th Street, 7 units, Tue/Thu/Sat, edwin weekdays, angel Saturday
//   - "chambers" 148 Chambers Street, 9 units, Mon/Wed/Fri, luis Mon/Wed/Fri only
//   - "big"   31 units, schedule authored by mistake
//   - "mid"   20 units, no schedule
func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Workers: []models.Worker{
			{ID: "kevin", Name: "Kevin Dutan"},
			{ID: "edwin", Name: "Edwin Lema"},
			{ID: "angel", Name: "Angel Guirachocha"},
			{ID: "luis", Name: "Luis Lopez"},
		},
		Units: []models.UnitCountRecord{
			{BuildingID: "perry", Units: 6},
			{BuildingID: "w17", Units: 7},
			{BuildingID: "chambers", Units: 9},
			{BuildingID: "big", Units: 31},
			{BuildingID: "mid", Units: 20},
		},
		Schedules: []models.BuildingCollectionSchedule{
			{
				BuildingID:     "perry",
				BuildingName:   "68 Perry Street",
				CollectionDays: days(models.Friday, models.Tuesday),
				SetOutTime:     mustTime(t, "19:00"),
				RetrievalTime:  mustTime(t, "08:30"),
				BinLocation:    "Under the stoop",
				WasteStreams: []models.WasteStreamGuidance{
					{WasteType: models.WasteTrash, CollectionDays: days(models.Tuesday, models.Friday), ContainerType: "Black bins"},
					{WasteType: models.WasteRecycling, CollectionDays: days(models.Friday), ContainerType: "Blue bin"},
				},
			},
			{
				BuildingID:          "w17",
				BuildingName:        "136 West 17th Street",
				CollectionDays:      days(models.Tuesday, models.Thursday, models.Saturday),
				SetOutTime:          mustTime(t, "20:00"),
				RetrievalTime:       mustTime(t, "08:30"),
				BinLocation:         "Sidewalk vault",
				SpecialInstructions: "Key is in the lockbox.",
			},
			{
				BuildingID:     "chambers",
				BuildingName:   "148 Chambers Street",
				CollectionDays: days(models.Monday, models.Wednesday, models.Friday),
				SetOutTime:     mustTime(t, "19:00"),
				RetrievalTime:  mustTime(t, "08:00"),
			},
			{
				BuildingID:     "big",
				BuildingName:   "Big Building",
				CollectionDays: days(models.Monday),
				SetOutTime:     mustTime(t, "19:00"),
				RetrievalTime:  mustTime(t, "08:00"),
			},
		},
		Rules: []models.ResponsibilityRule{
			{BuildingID: "perry", WorkerID: "kevin"},
			{BuildingID: "w17", WorkerID: "edwin", Days: weekdays},
			{BuildingID: "w17", WorkerID: "angel", Days: days(models.Saturday)},
			{BuildingID: "chambers", WorkerID: "luis", Days: days(models.Monday, models.Wednesday, models.Friday)},
		},
	}
}

// tuesday is 2026-10-20 in New York (EDT, UTC-4).
func tuesdayCalendar() FixedCalendar {
	return FixedCalendar{At: time.Date(2026, 10, 20, 9, 0, 0, 0, time.FixedZone("EDT", -4*3600))}
}

func newTestEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(DiscardLogger()), WithCalendar(tuesdayCalendar())}, opts...)
	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

func taskIDs(tasks []models.OperationTask) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func scheduleIDs(schedules []models.BuildingCollectionSchedule) []string {
	ids := make([]string, len(schedules))
	for i, s := range schedules {
		ids[i] = s.BuildingID
	}
	return ids
}
