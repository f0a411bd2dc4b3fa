package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/scenario"
)

// NewValidateCmd creates the validate command for checking scenario
// parameters without storing or running anything.
func NewValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate scenario parameters from a YAML file",
		Long: `Checks a scenario definition against the parameter rules: year range
and ordering, target reduction bounds, annual change bounds, known
vehicle categories, and emissions/usage data plausibility.

Validation never runs a calculation; it only reports errors, warnings,
and suggestions.`,
		Example: `  # Validate a scenario definition
  pathwise validate --file scenario.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runValidate(cmd *cobra.Command, file string) error {
	sc, err := readScenarioFile(file)
	if err != nil {
		return err
	}

	v := scenario.Validate(sc.Parameters)
	printValidation(cmd, v)
	if !v.Valid {
		return fmt.Errorf("scenario has %d validation error(s)", len(v.Errors))
	}
	return nil
}
