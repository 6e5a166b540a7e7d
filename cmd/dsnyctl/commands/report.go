package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"dsny-backend/internal/models"

	"github.com/spf13/cobra"
)

func newAuditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Classify every building by DSNY container requirement",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}
			audit := engine.Units.AnalyzeAllBuildings()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, audit)
			}

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "BUILDING\tUNITS\tCATEGORY\tBIN-MANAGED")
			for _, a := range audit {
				managed := "no"
				if a.RequiresBinManagement {
					managed = "yes"
				}
				fmt.Fprintf(writer, "%s\t%d\t%s\t%s\n", a.BuildingID, a.Units, a.CategoryLabel, managed)
			}
			return writer.Flush()
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print set-out and retrieval days for every bin-managed building",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.engine()
			if err != nil {
				return failure("Failed to load the DSNY engine.", err.Error())
			}
			plans := engine.Registry.GetBinManagementPlan()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, plans)
			}

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "BUILDING\tNAME\tSET OUT\tAT\tRETRIEVE\tBY")
			for _, p := range plans {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.BuildingID, p.BuildingName,
					dayList(p.SetOutDays), p.SetOutTime.Label(),
					dayList(p.RetrievalDays), p.RetrievalTime.Label())
			}
			return writer.Flush()
		},
	}
}

func dayList(days []models.CollectionDay) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}
