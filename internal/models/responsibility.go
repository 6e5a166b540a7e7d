package models

// ResponsibilityRule assigns a worker to a building's bin handling.
// Empty Days means every day of the week.
type ResponsibilityRule struct {
	BuildingID string          `json:"building_id"`
	WorkerID   string          `json:"worker_id"`
	Days       []CollectionDay `json:"days,omitempty"`
}

// Applies reports whether the rule covers day.
func (r ResponsibilityRule) Applies(day CollectionDay) bool {
	if len(r.Days) == 0 {
		return day.Valid()
	}
	return ContainsDay(r.Days, day)
}
