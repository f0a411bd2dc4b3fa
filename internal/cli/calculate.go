package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/scenario"
)

// NewCalculateCmd creates the calculate command.
func NewCalculateCmd() *cobra.Command {
	var (
		file       string
		jsonOutput bool
		progress   bool
	)
	cmd := &cobra.Command{
		Use:   "calculate [scenario-id]",
		Short: "Run the full per-vehicle calculation for a scenario",
		Long: `Computes emissions, costs, energy, infrastructure, health, and economic
results for every vehicle in every analysis year, evaluates the
configured constraints, and aggregates the results per year, per
vehicle type, and scenario-wide.`,
		Example: `  # Calculate a stored scenario
  pathwise calculate 3f2a...

  # Calculate from a file with per-year progress
  pathwise calculate --file scenario.yaml --progress`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runCalculate(cmd, id, file, jsonOutput, progress)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file (alternative to a stored scenario)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&progress, "progress", false, "print per-year progress while calculating")

	return cmd
}

func runCalculate(cmd *cobra.Command, id, file string, jsonOutput, progress bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := resolveScenario(cmd, id, file)
	if err != nil {
		return err
	}
	if sc.ID == "" {
		sc.ID = "adhoc"
	}

	if v := scenario.Validate(sc.Parameters); !v.Valid {
		printValidation(cmd, v)
		return fmt.Errorf("scenario has %d validation error(s)", len(v.Errors))
	}

	eng := newEngine(cfg, nil)
	if progress {
		eng.OnProgress(func(snap engine.ProgressSnapshot) {
			cmd.Printf("  %3.0f%%  %d/%d years\n",
				snap.PercentComplete, len(snap.YearsCompleted), len(sc.Parameters.Years))
		})
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Engine.CalculationTimeout())
	defer cancel()

	result, err := eng.CalculateScenario(ctx, sc)
	if err != nil {
		return fmt.Errorf("calculate scenario: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, result)
	}
	printCalculationResult(cmd, result)
	return nil
}

func printCalculationResult(cmd *cobra.Command, result *engine.ScenarioResult) {
	cmd.Printf("Scenario %s calculated in %s\n",
		result.ScenarioID, result.Performance.CalculationTime)

	cmd.Println("\nPer-year totals:")
	for _, yr := range result.PerYearResults {
		agg := yr.Aggregated
		cmd.Printf("  %d  emissions %12.1f kgCO2e  cost %14.0f  energy %12.0f kWh\n",
			yr.Year, agg.TotalEmissions, agg.TotalCost, agg.TotalEnergy)
	}

	s := result.Aggregated.Summary
	cmd.Printf("\nScenario totals: %.1f kgCO2e, %.0f cost, %.0f kWh\n",
		s.TotalEmissions, s.TotalCost, s.TotalEnergy)

	ca := result.ConstraintAnalysis
	if ca.OverallCompliance {
		cmd.Println("Constraints:     all compliant")
		return
	}
	cmd.Printf("Constraints:     %d non-compliant cells (%d critical)\n",
		len(ca.Violations), len(ca.CriticalViolations))
	for _, v := range ca.Violations {
		for _, detail := range v.Violations {
			cmd.Printf("  %d %s: %s\n", v.Year, v.VehicleType, detail)
		}
	}
}
