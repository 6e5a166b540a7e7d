package dsny

import (
	"sort"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
)

// Resolver maps (building, day) to the worker accountable for its bins.
// It is a pure lookup over a declarative rule table.
type Resolver struct {
	rules     map[string][]models.ResponsibilityRule
	offRoster []models.ResponsibilityRule
	roster    []models.Worker
}

// NewResolver indexes rules by building. Rules are copied. Rules naming a
// worker who is not on the roster never resolve; CheckRoster reports them.
func NewResolver(rules []models.ResponsibilityRule, roster []models.Worker) *Resolver {
	r := &Resolver{
		rules:  make(map[string][]models.ResponsibilityRule),
		roster: append([]models.Worker(nil), roster...),
	}
	for _, rule := range rules {
		rule.Days = append([]models.CollectionDay(nil), rule.Days...)
		if _, ok := r.Worker(rule.WorkerID); !ok {
			r.offRoster = append(r.offRoster, rule)
			continue
		}
		r.rules[rule.BuildingID] = append(r.rules[rule.BuildingID], rule)
	}
	return r
}

// ShouldWorkerHandleBuilding reports whether a rule assigns workerID to
// buildingID on day. Buildings without rules have no responsible worker.
func (r *Resolver) ShouldWorkerHandleBuilding(workerID, buildingID string, day models.CollectionDay) bool {
	for _, rule := range r.rules[buildingID] {
		if rule.WorkerID == workerID && rule.Applies(day) {
			return true
		}
	}
	return false
}

// ResponsibleWorkers returns every worker a rule assigns on day, sorted.
func (r *Resolver) ResponsibleWorkers(buildingID string, day models.CollectionDay) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rule := range r.rules[buildingID] {
		if !rule.Applies(day) {
			continue
		}
		if _, ok := seen[rule.WorkerID]; ok {
			continue
		}
		seen[rule.WorkerID] = struct{}{}
		out = append(out, rule.WorkerID)
	}
	sort.Strings(out)
	return out
}

// ResponsibleWorker returns the single accountable worker. It reports false
// when nobody, or more than one worker, is assigned.
func (r *Resolver) ResponsibleWorker(buildingID string, day models.CollectionDay) (string, bool) {
	workers := r.ResponsibleWorkers(buildingID, day)
	if len(workers) != 1 {
		return "", false
	}
	return workers[0], true
}

// Workers returns the known roster.
func (r *Resolver) Workers() []models.Worker {
	return append([]models.Worker(nil), r.roster...)
}

// Worker looks up a roster member by id.
func (r *Resolver) Worker(id string) (models.Worker, bool) {
	for _, w := range r.roster {
		if w.ID == id {
			return w, true
		}
	}
	return models.Worker{}, false
}

// RuleBuildings returns the sorted ids of buildings that have any rule.
func (r *Resolver) RuleBuildings() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckCoverage verifies that every collection day of every scheduled
// building resolves to exactly one worker on the roster.
func (r *Resolver) CheckCoverage(registry *Registry, logger *log.Logger) []Issue {
	logger = loggerOrDefault(logger)
	var issues []Issue
	for _, s := range registry.schedules {
		for _, day := range s.CollectionDays {
			onRoster := r.ResponsibleWorkers(s.BuildingID, day)
			switch len(onRoster) {
			case 1:
				continue
			case 0:
				logger.Warn("⚠️  No worker is responsible for bins on a collection day",
					"building_id", s.BuildingID, "day", day.Key())
				issues = append(issues, Issue{
					Kind:       IssueUnassignedResponsibility,
					BuildingID: s.BuildingID,
					Day:        dayPtr(day),
					Message:    "no worker on the roster resolves for this collection day",
				})
			default:
				logger.Warn("⚠️  More than one worker is responsible for bins on a collection day",
					"building_id", s.BuildingID, "day", day.Key(), "workers", onRoster)
				issues = append(issues, Issue{
					Kind:       IssueAmbiguousResponsibility,
					BuildingID: s.BuildingID,
					Day:        dayPtr(day),
					WorkerIDs:  onRoster,
					Message:    "more than one worker resolves for this collection day",
				})
			}
		}
	}
	return issues
}

// CheckRoster reports every rule that names a worker missing from the roster.
func (r *Resolver) CheckRoster(logger *log.Logger) []Issue {
	logger = loggerOrDefault(logger)
	var issues []Issue
	for _, rule := range r.offRoster {
		logger.Warn("⚠️  Responsibility rule names a worker who is not on the roster",
			"building_id", rule.BuildingID, "worker_id", rule.WorkerID)
		issues = append(issues, Issue{
			Kind:       IssueUnknownWorker,
			BuildingID: rule.BuildingID,
			WorkerIDs:  []string{rule.WorkerID},
			Message:    "rule ignored, worker is not on the roster",
		})
	}
	return issues
}
