package dsny

import (
	"testing"

	"dsny-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OnlyBinManagedBuildingsSortedByName(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	buildings := e.Registry.GetBinManagementBuildings()
	assert.Equal(t, []string{"w17", "chambers", "perry"}, scheduleIDs(buildings))
	assert.Equal(t, []string{"w17", "chambers", "perry"}, e.Registry.BuildingIDs())

	binManaged := map[string]bool{}
	for _, id := range e.Units.BuildingsRequiringBinManagement() {
		binManaged[id] = true
	}
	for _, s := range buildings {
		assert.True(t, binManaged[s.BuildingID], "%s is not bin-managed", s.BuildingID)
	}
}

func TestRegistry_ThirtyOneUnitsNeverRegistered(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	assert.NotContains(t, scheduleIDs(e.Registry.GetBinManagementBuildings()), "big")
	assert.False(t, e.Registry.HasCollection("big", models.Monday))

	issues := e.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, IssueNotBinManaged, issues[0].Kind)
	assert.Equal(t, "big", issues[0].BuildingID)
}

func TestRegistry_UnitCountCopiedFromValidator(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	s, err := e.Registry.Schedule("perry")
	require.NoError(t, err)
	assert.Equal(t, 6, s.Units)
	assert.Equal(t, days(models.Tuesday, models.Friday), s.CollectionDays)
}

func TestRegistry_HasCollectionTuesdayFriday(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	for _, day := range models.AllCollectionDays {
		want := day == models.Tuesday || day == models.Friday
		assert.Equal(t, want, e.Registry.HasCollection("perry", day), day.String())
	}
	assert.False(t, e.Registry.HasCollection("unknown", models.Tuesday))
}

func TestRegistry_SetOutIsRetrievalShiftedByOneDay(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	for _, day := range models.AllCollectionDays {
		assert.Equal(t,
			scheduleIDs(e.Registry.GetBuildingsForBinRetrieval(day.NextDay())),
			scheduleIDs(e.Registry.GetBuildingsForBinSetOut(day)),
			day.String())
	}

	assert.Equal(t, []string{"w17", "perry"}, scheduleIDs(e.Registry.GetBuildingsForBinSetOut(models.Monday)))
	assert.Equal(t, []string{"chambers"}, scheduleIDs(e.Registry.GetBuildingsForBinRetrieval(models.Monday)))
	assert.Empty(t, e.Registry.GetBuildingsForBinRetrieval(models.Sunday))
}

func TestRegistry_Plan(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	plans := e.Registry.GetBinManagementPlan()
	require.Len(t, plans, 3)

	byID := map[string]models.BinManagementPlan{}
	for _, p := range plans {
		byID[p.BuildingID] = p
	}
	assert.Equal(t, "136 West 17th Street", plans[0].BuildingName)

	perry := byID["perry"]
	assert.Equal(t, days(models.Tuesday, models.Friday), perry.RetrievalDays)
	assert.Equal(t, days(models.Monday, models.Thursday), perry.SetOutDays)
	assert.Equal(t, "19:00", perry.SetOutTime.String())

	w17 := byID["w17"]
	assert.Equal(t, days(models.Monday, models.Wednesday, models.Friday), w17.SetOutDays)
}

func TestRegistry_ScheduleUnknownBuilding(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	_, err := e.Registry.Schedule("nope")
	require.ErrorIs(t, err, ErrUnknownBuilding)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	list := e.Registry.GetBinManagementBuildings()
	list[2].CollectionDays[0] = models.Sunday
	list[2].BuildingName = "mutated"

	s, err := e.Registry.Schedule("perry")
	require.NoError(t, err)
	assert.Equal(t, "68 Perry Street", s.BuildingName)
	assert.Equal(t, models.Tuesday, s.CollectionDays[0])
}

func TestRegistry_MissingScheduleAndMissingUnitCount(t *testing.T) {
	cfg := testConfig(t)
	cfg.Units = append(cfg.Units, models.UnitCountRecord{BuildingID: "lonely", Units: 3})
	cfg.Schedules = append(cfg.Schedules, models.BuildingCollectionSchedule{
		BuildingID:     "orphan",
		BuildingName:   "Orphan",
		CollectionDays: days(models.Monday),
	})

	e := newTestEngine(t, cfg)

	kinds := map[IssueKind][]string{}
	for _, i := range e.Issues() {
		kinds[i.Kind] = append(kinds[i.Kind], i.BuildingID)
	}
	assert.Equal(t, []string{"lonely"}, kinds[IssueMissingSchedule])
	assert.Equal(t, []string{"orphan"}, kinds[IssueMissingUnitCount])
	assert.Equal(t, []string{"big"}, kinds[IssueNotBinManaged])

	assert.NotContains(t, scheduleIDs(e.Registry.GetBinManagementBuildings()), "lonely")
	assert.NotContains(t, scheduleIDs(e.Registry.GetBinManagementBuildings()), "orphan")
}
