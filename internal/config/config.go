package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only reference-data file version this build reads.
const SupportedVersion = "1"

//go:embed dsny.yaml
var defaultReferenceData []byte

// File is the versioned DSNY reference-data file.
type File struct {
	Version          string               `yaml:"version"`
	Timezone         string               `yaml:"timezone"`
	Workers          []WorkerConfig       `yaml:"workers"`
	Units            []UnitConfig         `yaml:"units"`
	Schedules        []ScheduleConfig     `yaml:"schedules"`
	Responsibilities []ResponsibilityRule `yaml:"responsibilities"`
}

type WorkerConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// UnitConfig is one residential unit count (commercial units excluded)
type UnitConfig struct {
	BuildingID string `yaml:"building_id"`
	Units      int    `yaml:"units"`
}

type ScheduleConfig struct {
	BuildingID          string              `yaml:"building_id"`
	Name                string              `yaml:"name"`
	CollectionDays      []string            `yaml:"collection_days"`
	SetOutTime          string              `yaml:"set_out_time"`
	RetrievalTime       string              `yaml:"retrieval_time"`
	BinLocation         string              `yaml:"bin_location"`
	SpecialInstructions string              `yaml:"special_instructions"`
	WasteStreams        []WasteStreamConfig `yaml:"waste_streams"`
}

type WasteStreamConfig struct {
	Type           string   `yaml:"type"`
	CollectionDays []string `yaml:"collection_days"`
	Container      string   `yaml:"container"`
	Instructions   string   `yaml:"instructions"`
}

// ResponsibilityRule in file form; omitted days means every day.
type ResponsibilityRule struct {
	BuildingID string   `yaml:"building_id"`
	WorkerID   string   `yaml:"worker_id"`
	Days       []string `yaml:"days"`
}

// Default returns the compiled-in reference data.
func Default() (*File, error) {
	f, err := Parse(defaultReferenceData)
	if err != nil {
		return nil, fmt.Errorf("embedded reference data: %w", err)
	}
	return f, nil
}

// Load reads and validates the reference data at path. An empty path
// falls back to the compiled-in copy.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(content)
}

// Parse decodes and validates reference data.
func Parse(content []byte) (*File, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, errors.New("reference data is empty")
	}
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate performs strict structural validation. Cross-entity consistency
// (bin-managed gating, responsibility coverage) is checked by the engine.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return fmt.Errorf("unsupported version: %q (expected: %q)", f.Version, SupportedVersion)
	}
	if strings.TrimSpace(f.Timezone) != "" {
		if _, err := time.LoadLocation(f.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", f.Timezone, err)
		}
	}

	workers := map[string]struct{}{}
	for i, w := range f.Workers {
		id := strings.TrimSpace(w.ID)
		if id == "" {
			return fmt.Errorf("workers[%d].id is required", i)
		}
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("workers[%d].name is required", i)
		}
		if _, ok := workers[id]; ok {
			return fmt.Errorf("workers[%d].id is duplicated: %s", i, id)
		}
		workers[id] = struct{}{}
	}

	units := map[string]struct{}{}
	for i, u := range f.Units {
		id := strings.TrimSpace(u.BuildingID)
		if id == "" {
			return fmt.Errorf("units[%d].building_id is required", i)
		}
		if u.Units < 0 {
			return fmt.Errorf("units[%d].units must be >= 0", i)
		}
		if _, ok := units[id]; ok {
			return fmt.Errorf("units[%d].building_id has more than one unit count: %s", i, id)
		}
		units[id] = struct{}{}
	}

	schedules := map[string]struct{}{}
	for i, s := range f.Schedules {
		if _, err := s.toModel(fmt.Sprintf("schedules[%d]", i)); err != nil {
			return err
		}
		id := strings.TrimSpace(s.BuildingID)
		if _, ok := schedules[id]; ok {
			return fmt.Errorf("schedules[%d].building_id is duplicated: %s", i, id)
		}
		schedules[id] = struct{}{}
	}

	for i, r := range f.Responsibilities {
		path := fmt.Sprintf("responsibilities[%d]", i)
		if _, err := r.toModel(path); err != nil {
			return err
		}
		if _, ok := workers[strings.TrimSpace(r.WorkerID)]; !ok {
			return fmt.Errorf("%s.worker_id references unknown worker %q", path, r.WorkerID)
		}
	}
	return nil
}

// Location resolves the configured timezone, defaulting to the host's.
func (f *File) Location() (*time.Location, error) {
	if strings.TrimSpace(f.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(f.Timezone)
}

// EngineConfig converts the file into the engine's typed input.
func (f *File) EngineConfig() (dsny.Config, error) {
	if err := f.Validate(); err != nil {
		return dsny.Config{}, err
	}
	cfg := dsny.Config{
		Workers:   make([]models.Worker, 0, len(f.Workers)),
		Units:     make([]models.UnitCountRecord, 0, len(f.Units)),
		Schedules: make([]models.BuildingCollectionSchedule, 0, len(f.Schedules)),
		Rules:     make([]models.ResponsibilityRule, 0, len(f.Responsibilities)),
	}
	for _, w := range f.Workers {
		cfg.Workers = append(cfg.Workers, models.Worker{
			ID:    strings.TrimSpace(w.ID),
			Name:  strings.TrimSpace(w.Name),
			Email: strings.TrimSpace(w.Email),
		})
	}
	for _, u := range f.Units {
		cfg.Units = append(cfg.Units, models.UnitCountRecord{BuildingID: strings.TrimSpace(u.BuildingID), Units: u.Units})
	}
	for i, s := range f.Schedules {
		m, err := s.toModel(fmt.Sprintf("schedules[%d]", i))
		if err != nil {
			return dsny.Config{}, err
		}
		cfg.Schedules = append(cfg.Schedules, m)
	}
	for i, r := range f.Responsibilities {
		m, err := r.toModel(fmt.Sprintf("responsibilities[%d]", i))
		if err != nil {
			return dsny.Config{}, err
		}
		cfg.Rules = append(cfg.Rules, m)
	}
	return cfg, nil
}

func (s ScheduleConfig) toModel(path string) (models.BuildingCollectionSchedule, error) {
	out := models.BuildingCollectionSchedule{
		BuildingID:          strings.TrimSpace(s.BuildingID),
		BuildingName:        strings.TrimSpace(s.Name),
		BinLocation:         strings.TrimSpace(s.BinLocation),
		SpecialInstructions: strings.TrimSpace(s.SpecialInstructions),
	}
	if out.BuildingID == "" {
		return out, fmt.Errorf("%s.building_id is required", path)
	}
	if out.BuildingName == "" {
		return out, fmt.Errorf("%s.name is required", path)
	}
	days, err := parseDays(path+".collection_days", s.CollectionDays)
	if err != nil {
		return out, err
	}
	if len(days) == 0 {
		return out, fmt.Errorf("%s.collection_days must include at least one day", path)
	}
	out.CollectionDays = days

	if out.SetOutTime, err = models.ParseTimeOfDay(s.SetOutTime); err != nil {
		return out, fmt.Errorf("%s.set_out_time: %w", path, err)
	}
	if out.RetrievalTime, err = models.ParseTimeOfDay(s.RetrievalTime); err != nil {
		return out, fmt.Errorf("%s.retrieval_time: %w", path, err)
	}

	for j, ws := range s.WasteStreams {
		wsPath := fmt.Sprintf("%s.waste_streams[%d]", path, j)
		wt, err := models.ParseWasteType(ws.Type)
		if err != nil {
			return out, fmt.Errorf("%s.type: %w", wsPath, err)
		}
		wsDays, err := parseDays(wsPath+".collection_days", ws.CollectionDays)
		if err != nil {
			return out, err
		}
		if strings.TrimSpace(ws.Container) == "" {
			return out, fmt.Errorf("%s.container is required", wsPath)
		}
		out.WasteStreams = append(out.WasteStreams, models.WasteStreamGuidance{
			WasteType:           wt,
			CollectionDays:      wsDays,
			ContainerType:       strings.TrimSpace(ws.Container),
			SpecialInstructions: strings.TrimSpace(ws.Instructions),
		})
	}
	return out, nil
}

func (r ResponsibilityRule) toModel(path string) (models.ResponsibilityRule, error) {
	out := models.ResponsibilityRule{
		BuildingID: strings.TrimSpace(r.BuildingID),
		WorkerID:   strings.TrimSpace(r.WorkerID),
	}
	if out.BuildingID == "" {
		return out, fmt.Errorf("%s.building_id is required", path)
	}
	if out.WorkerID == "" {
		return out, fmt.Errorf("%s.worker_id is required", path)
	}
	days, err := parseDays(path+".days", r.Days)
	if err != nil {
		return out, err
	}
	out.Days = days
	return out, nil
}

func parseDays(path string, raw []string) ([]models.CollectionDay, error) {
	days := make([]models.CollectionDay, 0, len(raw))
	for i, s := range raw {
		d, err := models.ParseCollectionDay(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		days = append(days, d)
	}
	return models.SortedDays(days), nil
}
