package config

import (
	"fmt"
	"strings"
	"time"

	"dsny-backend/internal/dsny"

	"github.com/charmbracelet/log"
)

// ResolveLocation picks the DSNY_TIMEZONE override, then the file's timezone.
func ResolveLocation(s Settings, f *File) (*time.Location, error) {
	if tz := strings.TrimSpace(s.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid DSNY_TIMEZONE %q: %w", tz, err)
		}
		return loc, nil
	}
	return f.Location()
}

// LoadEngine reads the reference data named by settings and builds the
// engine on the system clock in the resolved timezone. Later opts win.
func LoadEngine(s Settings, logger *log.Logger, opts ...dsny.Option) (*dsny.Engine, *File, error) {
	f, err := Load(s.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	loc, err := ResolveLocation(s, f)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := f.EngineConfig()
	if err != nil {
		return nil, nil, err
	}

	base := []dsny.Option{
		dsny.WithLogger(logger),
		dsny.WithCalendar(dsny.NewSystemCalendar(loc)),
		dsny.WithStrictValidation(s.StrictValidation),
	}
	engine, err := dsny.NewEngine(cfg, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return engine, f, nil
}
