package dsny

import (
	"errors"
	"testing"

	"dsny-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_StrictFailsOnIssues(t *testing.T) {
	_, err := NewEngine(testConfig(t), WithLogger(DiscardLogger()), WithStrictValidation(true))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "not_bin_managed")

	var issue Issue
	require.True(t, errors.As(err, &issue))
	assert.Equal(t, "big", issue.BuildingID)
}

func TestNewEngine_StrictPassesCleanConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedules = cfg.Schedules[:3]

	e, err := NewEngine(cfg, WithLogger(DiscardLogger()), WithCalendar(tuesdayCalendar()), WithStrictValidation(true))
	require.NoError(t, err)
	assert.Empty(t, e.Issues())
	assert.Equal(t, models.Tuesday, e.Today())
}

func TestNewEngine_LenientKeepsIssues(t *testing.T) {
	e := newTestEngine(t, testConfig(t))

	issues := e.Issues()
	require.Len(t, issues, 1)
	issues[0].BuildingID = "mutated"
	assert.Equal(t, "big", e.Issues()[0].BuildingID)
}

func TestNewEngine_RejectsBadUnitData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Units = append(cfg.Units, models.UnitCountRecord{BuildingID: "neg", Units: -1})

	_, err := NewEngine(cfg, WithLogger(DiscardLogger()))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewEngine_RuleForUnknownBuilding(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedules = cfg.Schedules[:3]
	cfg.Rules = append(cfg.Rules, models.ResponsibilityRule{BuildingID: "phantom", WorkerID: "kevin"})

	e := newTestEngine(t, cfg)
	issues := e.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, IssueMissingUnitCount, issues[0].Kind)
	assert.Equal(t, "phantom", issues[0].BuildingID)
}

func TestNewEngine_DefaultsToSystemCalendar(t *testing.T) {
	cfg := testConfig(t)
	e, err := NewEngine(cfg, WithLogger(DiscardLogger()))
	require.NoError(t, err)
	assert.IsType(t, &SystemCalendar{}, e.Calendar())
	assert.True(t, e.Today().Valid())
}

func TestIssue_Error(t *testing.T) {
	i := Issue{
		Kind:       IssueAmbiguousResponsibility,
		BuildingID: "perry",
		Day:        dayPtr(models.Friday),
		WorkerIDs:  []string{"kevin", "luis"},
		Message:    "pick one",
	}
	assert.Equal(t, "ambiguous_responsibility: building perry on friday (workers: kevin, luis): pick one", i.Error())
}
