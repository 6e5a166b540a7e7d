package dsny

import (
	"fmt"
	"sort"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
)

// UnitValidator is the single source of truth for residential unit counts
// and the DSNY compliance tier derived from them.
type UnitValidator struct {
	counts map[string]int
	ids    []string
	logger *log.Logger
}

// NewUnitValidator indexes records. A building may have exactly one count.
func NewUnitValidator(records []models.UnitCountRecord, logger *log.Logger) (*UnitValidator, error) {
	v := &UnitValidator{
		counts: make(map[string]int, len(records)),
		logger: loggerOrDefault(logger),
	}
	for _, r := range records {
		if _, dup := v.counts[r.BuildingID]; dup {
			return nil, fmt.Errorf("building %s has more than one unit count", r.BuildingID)
		}
		if r.Units < 0 {
			return nil, fmt.Errorf("building %s has negative unit count %d", r.BuildingID, r.Units)
		}
		v.counts[r.BuildingID] = r.Units
		v.ids = append(v.ids, r.BuildingID)
	}
	sort.Strings(v.ids)
	return v, nil
}

// UnitCount returns the residential unit count for buildingID.
func (v *UnitValidator) UnitCount(buildingID string) (int, bool) {
	n, ok := v.counts[buildingID]
	return n, ok
}

// Category returns the compliance category, false when the count is unknown.
func (v *UnitValidator) Category(buildingID string) (models.ComplianceCategory, bool) {
	n, ok := v.counts[buildingID]
	if !ok {
		return 0, false
	}
	return models.CategoryForUnits(n), true
}

// RequiresIndividualBins is true iff the count is known and at most 9.
// Missing data answers false and is logged as a data-quality warning.
func (v *UnitValidator) RequiresIndividualBins(buildingID string) bool {
	return v.is(buildingID, models.IndividualBinsRequired)
}

// CanChooseContainerType is true iff the count is 10..30.
func (v *UnitValidator) CanChooseContainerType(buildingID string) bool {
	return v.is(buildingID, models.ChoiceBetweenBinsAndEmpire)
}

// RequiresEmpireContainers is true iff the count is 31 or more.
func (v *UnitValidator) RequiresEmpireContainers(buildingID string) bool {
	return v.is(buildingID, models.EmpireContainersRequired)
}

func (v *UnitValidator) is(buildingID string, want models.ComplianceCategory) bool {
	category, ok := v.Category(buildingID)
	if !ok {
		v.logger.Warn("⚠️  No unit count on record, treating building as not bin-managed",
			"building_id", buildingID, "check", want.String())
		return false
	}
	return category == want
}

// BuildingsRequiringBinManagement returns the sorted ids of every building
// that must use individual bins. The registry may only contain these.
func (v *UnitValidator) BuildingsRequiringBinManagement() []string {
	var out []string
	for _, id := range v.ids {
		if models.CategoryForUnits(v.counts[id]) == models.IndividualBinsRequired {
			out = append(out, id)
		}
	}
	return out
}

// IsBinManaged reports membership in BuildingsRequiringBinManagement without logging.
func (v *UnitValidator) IsBinManaged(buildingID string) bool {
	n, ok := v.counts[buildingID]
	return ok && models.CategoryForUnits(n) == models.IndividualBinsRequired
}

// AnalyzeAllBuildings returns one audit row per known building, sorted by id.
func (v *UnitValidator) AnalyzeAllBuildings() []models.BuildingAnalysis {
	out := make([]models.BuildingAnalysis, 0, len(v.ids))
	for _, id := range v.ids {
		n := v.counts[id]
		category := models.CategoryForUnits(n)
		out = append(out, models.BuildingAnalysis{
			BuildingID:            id,
			Units:                 n,
			Category:              category,
			CategoryLabel:         category.Label(),
			RequiresBinManagement: category == models.IndividualBinsRequired,
		})
	}
	return out
}
