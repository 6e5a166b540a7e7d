package commands

import (
	"fmt"

	"dsny-backend/internal/dsny"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the reference data and list configuration issues",
		Long: `validate loads the reference data, builds the engine and prints every
configuration issue found: missing unit counts or schedules, schedules for
buildings that are not bin-managed, and collection days with no or several
responsible workers. With --strict (the default) any issue is a failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, file, err := opts.engine(dsny.WithStrictValidation(false))
			if err != nil {
				return failure("Reference data is invalid.", err.Error())
			}
			issues := engine.Issues()
			out := cmd.OutOrStdout()

			if opts.jsonOutput {
				if err := writeJSON(out, map[string]any{
					"version": file.Version,
					"issues":  issues,
				}); err != nil {
					return err
				}
			} else {
				for _, issue := range issues {
					warning(out, "%s", issue.Error())
				}
				if len(issues) == 0 {
					success(out, "Reference data v%s is valid: %d bin-managed buildings, %d workers",
						file.Version, engine.Registry.Len(), len(engine.Resolver.Workers()))
				}
			}

			if len(issues) > 0 && opts.settings().StrictValidation {
				return failure(fmt.Sprintf("Found %d configuration issue(s).", len(issues)),
					"Fix the reference data, or pass --strict=false to accept it.")
			}
			return nil
		},
	}
}
