package commands

import (
	"os"
	"time"

	"dsny-backend/internal/config"
	"dsny-backend/internal/dsny"
	"dsny-backend/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// options are the global flags shared by every subcommand.
type options struct {
	configPath string
	timezone   string
	strict     bool
	strictSet  bool
	jsonOutput bool
	logLevel   string

	// now overrides the wall clock in tests.
	now func() time.Time
}

func (o *options) settings() config.Settings {
	s, _ := config.LoadSettings()
	if o.configPath != "" {
		s.ConfigPath = o.configPath
	}
	if o.timezone != "" {
		s.Timezone = o.timezone
	}
	if o.strictSet {
		s.StrictValidation = o.strict
	}
	return s
}

func (o *options) logger() *log.Logger {
	level := o.logLevel
	if level == "" {
		level = "warn"
	}
	return logging.MustNew(os.Stderr, level, "dsnyctl")
}

// engine builds the engine from flags and environment.
func (o *options) engine(extra ...dsny.Option) (*dsny.Engine, *config.File, error) {
	s := o.settings()
	opts := extra
	if o.now != nil {
		f, err := config.Load(s.ConfigPath)
		if err != nil {
			return nil, nil, err
		}
		loc, err := config.ResolveLocation(s, f)
		if err != nil {
			return nil, nil, err
		}
		cal := dsny.NewSystemCalendar(loc).WithClock(o.now)
		opts = append([]dsny.Option{dsny.WithCalendar(cal)}, extra...)
	}
	return config.LoadEngine(s, o.logger(), opts...)
}

// NewRootCmd builds the dsnyctl command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, &options{})
}

func newRootCmd(version string, opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "dsnyctl",
		Short: "dsnyctl - DSNY collection scheduling and bin-responsibility tool",
		Long: `dsnyctl inspects the DSNY reference data, prints collection plans,
tasks and reminders, and dispatches a day's work into the database.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.strictSet = cmd.Flags().Changed("strict")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "reference data file (default: compiled-in data or DSNY_CONFIG_PATH)")
	flags.StringVar(&opts.timezone, "timezone", "", "override the reference data timezone")
	flags.BoolVar(&opts.strict, "strict", true, "fail when startup validation finds any issue (default: DSNY_STRICT_VALIDATION, else true)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(
		newValidateCmd(opts),
		newAuditCmd(opts),
		newPlanCmd(opts),
		newTasksCmd(opts),
		newRemindersCmd(opts),
		newMigrateCmd(opts),
		newDispatchCmd(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
