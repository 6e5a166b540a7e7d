package commands

import (
	"time"

	"dsny-backend/internal/database"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func (o *options) connect(logger *log.Logger) (*sqlx.DB, error) {
	s := o.settings()
	if s.DatabaseURL == "" {
		return nil, failure("DATABASE_URL is not set.", "Set DATABASE_URL in the environment or a .env file.")
	}
	db, err := database.Connect(s.DatabaseURL, logger)
	if err != nil {
		return nil, failure("Database connection failed.", err.Error())
	}
	return db, nil
}

func newMigrateCmd(opts *options) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the dispatch tables and seed logins",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			db, err := opts.connect(logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db, logger); err != nil {
				return failure("Migration failed.", err.Error())
			}
			out := cmd.OutOrStdout()
			success(out, "Database schema is up to date")

			if !seed {
				return nil
			}
			_, file, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}
			cfg, err := file.EngineConfig()
			if err != nil {
				return failure("Failed to read roster.", err.Error())
			}
			s := opts.settings()
			if err := database.SeedUsers(cmd.Context(), db, cfg.Workers, s.SeedWorkerPassword, s.SeedAdminPassword, logger); err != nil {
				return failure("User seeding failed.", err.Error())
			}
			success(out, "Seeded logins for %d workers", len(cfg.Workers))
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "seed worker and admin logins from the roster")
	return cmd
}

func newDispatchCmd(opts *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Store a day's tasks and reminders for downstream consumers",
		Long: `dispatch generates every worker's retrieval and set-out tasks plus the
day's reminders and stores them keyed by id and service date. Running it
again for the same date inserts nothing new.`,
		Example: `  dsnyctl dispatch
  dsnyctl dispatch --date 2026-10-20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}

			at := engine.Calendar().Now()
			if date != "" {
				at, err = time.ParseInLocation("2006-01-02", date, engine.Calendar().Location())
				if err != nil {
					return failure("Invalid --date.", "Use YYYY-MM-DD.")
				}
			}
			plan := engine.PlanFor(at)

			logger := opts.logger()
			db, err := opts.connect(logger)
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := database.SaveDispatch(cmd.Context(), db, plan, nil)
			if err != nil {
				return failure("Dispatch failed.", err.Error())
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, run)
			}
			success(out, "Dispatched %s (%s): %d tasks generated, %d new; %d new reminders",
				plan.ServiceDate.Format("2006-01-02"), plan.Day, run.TasksGenerated, run.TasksInserted, run.RemindersInserted)
			if plan.IssueCount > 0 {
				warning(out, "%d configuration issue(s) outstanding; run dsnyctl validate", plan.IssueCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "service date YYYY-MM-DD (default: today in the configured timezone)")
	return cmd
}
