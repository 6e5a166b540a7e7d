package models

import "fmt"

// ComplianceCategory is the DSNY container tier a building falls into.
// It is always derived from the unit count and never stored.
type ComplianceCategory int

const (
	IndividualBinsRequired ComplianceCategory = iota
	ChoiceBetweenBinsAndEmpire
	EmpireContainersRequired
)

// Unit-count thresholds for DSNY containerization.
const (
	MaxIndividualBinUnits = 9
	MaxChoiceUnits        = 30
)

// complianceLabels holds the operator-facing text for each category.
var complianceLabels = map[ComplianceCategory]string{
	IndividualBinsRequired:     "Individual Bins Required",
	ChoiceBetweenBinsAndEmpire: "Choice: Bins or Empire Containers",
	EmpireContainersRequired:   "Empire Containers Required",
}

var complianceKeys = map[ComplianceCategory]string{
	IndividualBinsRequired:     "individual_bins_required",
	ChoiceBetweenBinsAndEmpire: "choice_between_bins_and_empire",
	EmpireContainersRequired:   "empire_containers_required",
}

// CategoryForUnits maps a residential unit count to its category.
func CategoryForUnits(units int) ComplianceCategory {
	switch {
	case units <= MaxIndividualBinUnits:
		return IndividualBinsRequired
	case units <= MaxChoiceUnits:
		return ChoiceBetweenBinsAndEmpire
	default:
		return EmpireContainersRequired
	}
}

// Label is the display text. Changing it never affects logic.
func (c ComplianceCategory) Label() string {
	if l, ok := complianceLabels[c]; ok {
		return l
	}
	return "Unknown"
}

func (c ComplianceCategory) String() string {
	if k, ok := complianceKeys[c]; ok {
		return k
	}
	return "unknown"
}

// ParseComplianceCategory accepts the keys produced by String.
func ParseComplianceCategory(s string) (ComplianceCategory, error) {
	for c, k := range complianceKeys {
		if k == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown compliance category %q", s)
}

func (c ComplianceCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ComplianceCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseComplianceCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnitCountRecord is the ground-truth residential unit count for a building.
// Commercial units are excluded.
type UnitCountRecord struct {
	BuildingID string `json:"building_id" yaml:"building_id"`
	Units      int    `json:"units" yaml:"units"`
}

// BuildingAnalysis is one row of the operator compliance audit.
type BuildingAnalysis struct {
	BuildingID            string             `json:"building_id"`
	Units                 int                `json:"units"`
	Category              ComplianceCategory `json:"category"`
	CategoryLabel         string             `json:"category_label"`
	RequiresBinManagement bool               `json:"requires_bin_management"`
}

// Worker is a member of the building-operations roster.
type Worker struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email"`
}
