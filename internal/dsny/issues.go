package dsny

import (
	"errors"
	"fmt"
	"strings"

	"dsny-backend/internal/models"
)

var (
	// ErrInvalidConfiguration is returned by NewEngine in strict mode when
	// startup validation finds any Issue.
	ErrInvalidConfiguration = errors.New("dsny: invalid configuration")
	// ErrUnknownBuilding is returned by single-building lookups.
	ErrUnknownBuilding = errors.New("dsny: unknown building")
)

type IssueKind string

const (
	IssueMissingUnitCount         IssueKind = "missing_unit_count"
	IssueMissingSchedule          IssueKind = "missing_schedule"
	IssueNotBinManaged            IssueKind = "not_bin_managed"
	IssueUnassignedResponsibility IssueKind = "unassigned_responsibility"
	IssueAmbiguousResponsibility  IssueKind = "ambiguous_responsibility"
	IssueUnknownWorker            IssueKind = "unknown_worker"
)

// Issue is a configuration gap found while building the engine. Every issue
// means some bins may never be handled and needs operator follow-up.
type Issue struct {
	Kind       IssueKind             `json:"kind"`
	BuildingID string                `json:"building_id"`
	Day        *models.CollectionDay `json:"day,omitempty"`
	WorkerIDs  []string              `json:"worker_ids,omitempty"`
	Message    string                `json:"message"`
}

func (i Issue) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: building %s", i.Kind, i.BuildingID)
	if i.Day != nil {
		fmt.Fprintf(&b, " on %s", i.Day.Key())
	}
	if len(i.WorkerIDs) > 0 {
		fmt.Fprintf(&b, " (workers: %s)", strings.Join(i.WorkerIDs, ", "))
	}
	if i.Message != "" {
		b.WriteString(": ")
		b.WriteString(i.Message)
	}
	return b.String()
}

func dayPtr(d models.CollectionDay) *models.CollectionDay {
	return &d
}

// issuesError joins issues into one error wrapping ErrInvalidConfiguration.
func issuesError(issues []Issue) error {
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = issue
	}
	return fmt.Errorf("%w: %d issue(s): %w", ErrInvalidConfiguration, len(issues), errors.Join(errs...))
}
