package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"

	"github.com/spf13/cobra"
)

// resolveDay parses --day or falls back to today in the engine's calendar.
func resolveDay(engine *dsny.Engine, raw string) (models.CollectionDay, error) {
	if strings.TrimSpace(raw) == "" {
		return engine.Today(), nil
	}
	return models.ParseCollectionDay(raw)
}

func newTasksCmd(opts *options) *cobra.Command {
	var worker, day string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print bin retrieval and set-out tasks for a day",
		Example: `  dsnyctl tasks --worker kevin --day tuesday
  dsnyctl tasks --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}
			d, err := resolveDay(engine, day)
			if err != nil {
				return failure("Invalid --day.", err.Error())
			}

			byWorker := map[string][]models.OperationTask{}
			var order []string
			if worker != "" {
				tasks := engine.Generator.GetBinRetrievalTasks(worker, d)
				byWorker[worker] = append(tasks, engine.Generator.GetBinSetOutTasks(worker, d)...)
				order = []string{worker}
			} else {
				byWorker = engine.Generator.GetDailyTasks(d)
				for _, w := range engine.Resolver.Workers() {
					order = append(order, w.ID)
				}
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				resp := map[string][]models.TaskResponse{}
				for _, id := range order {
					list := make([]models.TaskResponse, 0, len(byWorker[id]))
					for i := range byWorker[id] {
						list = append(list, byWorker[id][i].ToTaskResponse())
					}
					resp[id] = list
				}
				return writeJSON(out, map[string]any{"day": d, "tasks": resp})
			}

			heading(out, "Bin tasks for %s", d)
			return printTasks(out, order, byWorker)
		},
	}

	cmd.Flags().StringVar(&worker, "worker", "", "worker id (default: every worker on the roster)")
	cmd.Flags().StringVar(&day, "day", "", "day of week (default: today)")
	return cmd
}

func printTasks(out io.Writer, order []string, byWorker map[string][]models.OperationTask) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "WORKER\tTIME\tTASK\tID")
	for _, id := range order {
		for _, t := range byWorker[id] {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", id, t.ScheduledTime.Label(), t.Name, t.ID)
		}
	}
	return writer.Flush()
}

func newRemindersCmd(opts *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Print set-out and retrieval reminders for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}
			d, err := resolveDay(engine, day)
			if err != nil {
				return failure("Invalid --day.", err.Error())
			}

			reminders := engine.Generator.GetBinRetrievalReminders(d)
			reminders = append(reminders, engine.Generator.GetBinSetOutReminders(d)...)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, reminders)
			}

			heading(out, "Reminders for %s", d)
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TIME\tACTION\tBUILDING\tCOLLECTION")
			for _, r := range reminders {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", r.ScheduledTime.Label(), r.Action, r.BuildingName, r.CollectionDay)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day of week (default: today)")
	return cmd
}
