package dsny

import (
	"fmt"
	"io"
	"sort"
	"time"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
)

// Config is the engine's static reference data.
type Config struct {
	Workers   []models.Worker
	Units     []models.UnitCountRecord
	Schedules []models.BuildingCollectionSchedule
	Rules     []models.ResponsibilityRule
}

type options struct {
	logger   *log.Logger
	calendar Calendar
	strict   bool
}

type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCalendar injects the current-day source. Defaults to the host clock in time.Local.
func WithCalendar(c Calendar) Option {
	return func(o *options) { o.calendar = c }
}

// WithStrictValidation makes NewEngine fail when startup validation finds any issue.
func WithStrictValidation(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// Engine bundles the four components. It is immutable after NewEngine
// returns and safe for concurrent use.
type Engine struct {
	Units     *UnitValidator
	Registry  *Registry
	Resolver  *Resolver
	Generator *Generator

	calendar Calendar
	issues   []Issue
}

// NewEngine builds validator, registry, resolver and generator in order and
// runs startup validation.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := loggerOrDefault(o.logger)
	if o.calendar == nil {
		o.calendar = NewSystemCalendar(time.Local)
	}

	units, err := NewUnitValidator(cfg.Units, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	registry, issues := NewRegistry(units, cfg.Schedules, logger)
	resolver := NewResolver(cfg.Rules, cfg.Workers)
	issues = append(issues, resolver.CheckCoverage(registry, logger)...)
	issues = append(issues, resolver.CheckRoster(logger)...)
	issues = append(issues, ruleReferenceIssues(units, resolver, issues, logger)...)

	e := &Engine{
		Units:     units,
		Registry:  registry,
		Resolver:  resolver,
		Generator: NewGenerator(registry, resolver, o.calendar),
		calendar:  o.calendar,
		issues:    issues,
	}

	if len(issues) > 0 && o.strict {
		return nil, issuesError(issues)
	}

	logger.Info("✅ DSNY engine ready",
		"buildings", registry.Len(),
		"bin_managed", len(units.BuildingsRequiringBinManagement()),
		"workers", len(cfg.Workers),
		"issues", len(issues))
	return e, nil
}

// Issues returns a copy of the startup validation findings.
func (e *Engine) Issues() []Issue {
	out := make([]Issue, len(e.issues))
	copy(out, e.issues)
	return out
}

// Calendar is the injected current-day source.
func (e *Engine) Calendar() Calendar {
	return e.calendar
}

// Today resolves the current weekday through the injected calendar.
func (e *Engine) Today() models.CollectionDay {
	return e.calendar.Today()
}

// ruleReferenceIssues flags rules naming buildings with no unit count, unless
// the registry already reported that building.
func ruleReferenceIssues(units *UnitValidator, resolver *Resolver, existing []Issue, logger *log.Logger) []Issue {
	reported := map[string]struct{}{}
	for _, i := range existing {
		if i.Kind == IssueMissingUnitCount {
			reported[i.BuildingID] = struct{}{}
		}
	}
	var issues []Issue
	ids := resolver.RuleBuildings()
	sort.Strings(ids)
	for _, id := range ids {
		if _, known := units.UnitCount(id); known {
			continue
		}
		if _, ok := reported[id]; ok {
			continue
		}
		logger.Warn("⚠️  Responsibility rule references a building with no unit count", "building_id", id)
		issues = append(issues, Issue{
			Kind:       IssueMissingUnitCount,
			BuildingID: id,
			Message:    "responsibility rule configured but no unit count on record",
		})
	}
	return issues
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.Default()
}

// DiscardLogger drops everything; handy for tests and quiet CLI modes.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
