package dsny

import (
	"fmt"
	"sort"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
)

// Registry serves the collection schedule of every bin-managed building.
// It is built once and never mutated.
type Registry struct {
	schedules []models.BuildingCollectionSchedule // sorted by building name
	byID      map[string]int
}

// NewRegistry walks the validator's bin-managed set and pairs each building
// with its authored schedule. Buildings without one are skipped, and schedules
// authored for buildings outside the set are rejected; both become issues.
func NewRegistry(units *UnitValidator, authored []models.BuildingCollectionSchedule, logger *log.Logger) (*Registry, []Issue) {
	logger = loggerOrDefault(logger)

	byBuilding := make(map[string]models.BuildingCollectionSchedule, len(authored))
	for _, s := range authored {
		byBuilding[s.BuildingID] = s
	}

	var issues []Issue
	r := &Registry{byID: map[string]int{}}

	for _, id := range units.BuildingsRequiringBinManagement() {
		s, ok := byBuilding[id]
		if !ok {
			logger.Warn("⚠️  Bin-managed building has no collection schedule configured", "building_id", id)
			issues = append(issues, Issue{
				Kind:       IssueMissingSchedule,
				BuildingID: id,
				Message:    "building requires individual bins but has no collection schedule",
			})
			continue
		}
		s = s.Clone()
		s.CollectionDays = models.SortedDays(s.CollectionDays)
		s.Units, _ = units.UnitCount(id)
		r.schedules = append(r.schedules, s)
	}

	// Authored order is irrelevant; report leftovers deterministically.
	leftovers := make([]string, 0)
	for id := range byBuilding {
		if !units.IsBinManaged(id) {
			leftovers = append(leftovers, id)
		}
	}
	sort.Strings(leftovers)
	for _, id := range leftovers {
		n, known := units.UnitCount(id)
		if !known {
			logger.Warn("⚠️  Schedule references a building with no unit count", "building_id", id)
			issues = append(issues, Issue{
				Kind:       IssueMissingUnitCount,
				BuildingID: id,
				Message:    "collection schedule configured but no unit count on record",
			})
			continue
		}
		logger.Warn("⚠️  Schedule configured for a building that is not bin-managed, skipping",
			"building_id", id, "units", n)
		issues = append(issues, Issue{
			Kind:       IssueNotBinManaged,
			BuildingID: id,
			Message:    fmt.Sprintf("%d units exceeds the individual-bin threshold of %d", n, models.MaxIndividualBinUnits),
		})
	}

	sort.SliceStable(r.schedules, func(i, j int) bool {
		if r.schedules[i].BuildingName != r.schedules[j].BuildingName {
			return r.schedules[i].BuildingName < r.schedules[j].BuildingName
		}
		return r.schedules[i].BuildingID < r.schedules[j].BuildingID
	})
	for i, s := range r.schedules {
		r.byID[s.BuildingID] = i
	}
	return r, issues
}

// Len is the number of scheduled buildings.
func (r *Registry) Len() int {
	return len(r.schedules)
}

// BuildingIDs returns the scheduled building ids in name order.
func (r *Registry) BuildingIDs() []string {
	ids := make([]string, len(r.schedules))
	for i, s := range r.schedules {
		ids[i] = s.BuildingID
	}
	return ids
}

// Schedule returns a copy of one building's schedule.
func (r *Registry) Schedule(buildingID string) (models.BuildingCollectionSchedule, error) {
	i, ok := r.byID[buildingID]
	if !ok {
		return models.BuildingCollectionSchedule{}, fmt.Errorf("%w: %s", ErrUnknownBuilding, buildingID)
	}
	return r.schedules[i].Clone(), nil
}

// GetBinManagementBuildings returns every schedule sorted by building name.
func (r *Registry) GetBinManagementBuildings() []models.BuildingCollectionSchedule {
	return r.filter(func(models.BuildingCollectionSchedule) bool { return true })
}

// HasCollection reports whether buildingID has collection on day.
// Unknown buildings have none.
func (r *Registry) HasCollection(buildingID string, day models.CollectionDay) bool {
	i, ok := r.byID[buildingID]
	if !ok {
		return false
	}
	return r.schedules[i].HasCollection(day)
}

// GetBuildingsForBinSetOut returns buildings collected tomorrow, so bins go out today.
func (r *Registry) GetBuildingsForBinSetOut(day models.CollectionDay) []models.BuildingCollectionSchedule {
	return r.GetBuildingsForBinRetrieval(day.NextDay())
}

// GetBuildingsForBinRetrieval returns buildings collected on day.
func (r *Registry) GetBuildingsForBinRetrieval(day models.CollectionDay) []models.BuildingCollectionSchedule {
	return r.filter(func(s models.BuildingCollectionSchedule) bool { return s.HasCollection(day) })
}

// GetBinManagementPlan projects every schedule into set-out and retrieval days.
// SetOutDays[i] is the evening before RetrievalDays[i].
func (r *Registry) GetBinManagementPlan() []models.BinManagementPlan {
	plans := make([]models.BinManagementPlan, 0, len(r.schedules))
	for _, s := range r.schedules {
		setOut := make([]models.CollectionDay, 0, len(s.CollectionDays))
		for _, d := range s.CollectionDays {
			setOut = append(setOut, d.PreviousDay())
		}
		plans = append(plans, models.BinManagementPlan{
			BuildingID:    s.BuildingID,
			BuildingName:  s.BuildingName,
			SetOutDays:    setOut,
			RetrievalDays: append([]models.CollectionDay(nil), s.CollectionDays...),
			SetOutTime:    s.SetOutTime,
			RetrievalTime: s.RetrievalTime,
		})
	}
	return plans
}

func (r *Registry) filter(keep func(models.BuildingCollectionSchedule) bool) []models.BuildingCollectionSchedule {
	out := make([]models.BuildingCollectionSchedule, 0)
	for _, s := range r.schedules {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	return out
}
