package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/optimizer"
	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd() *cobra.Command {
	var (
		file       string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "optimize [scenario-id]",
		Short: "Optimize the adoption pathway for a scenario",
		Long: `Solves for the clean-technology adoption schedule that minimizes total
emissions across the analysis years, subject to the reduction target
and rate-of-change limits. When the target cannot be met at the allowed
pace, the solve retries once with rate limits relaxed and flags the
result accordingly.`,
		Example: `  # Optimize a stored scenario
  pathwise optimize 3f2a...

  # Optimize straight from a file, printing the full result as JSON
  pathwise optimize --file scenario.yaml --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runOptimize(cmd, id, file, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file (alternative to a stored scenario)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")

	return cmd
}

func runOptimize(cmd *cobra.Command, id, file string, jsonOutput bool) error {
	sc, err := resolveScenario(cmd, id, file)
	if err != nil {
		return err
	}

	if v := scenario.Validate(sc.Parameters); !v.Valid {
		printValidation(cmd, v)
		return fmt.Errorf("scenario has %d validation error(s)", len(v.Errors))
	}

	result := optimizer.Optimize(optimizer.Input{
		Years:             sc.Parameters.Years,
		VehicleTypes:      sc.Parameters.VehicleTypes,
		TargetReduction:   sc.Parameters.TargetReduction,
		MaxAnnualChange:   sc.Parameters.MaxAnnualChange,
		EmissionsFactors:  sc.Parameters.EmissionsFactors,
		UsagePatterns:     sc.Parameters.UsagePatterns,
		AdoptionRates:     sc.Parameters.AdoptionRates,
		EnableConstraints: sc.Parameters.EnableConstraints,
	})

	logger.Info().
		Str("scenario_id", sc.ID).
		Str("operation", "optimize").
		Bool("success", result.Success).
		Int("iterations", result.Iterations).
		Msg("optimization finished")

	if jsonOutput {
		return printJSON(cmd, result)
	}
	printOptimizeResult(cmd, result)
	if !result.Success {
		return errors.New("optimization did not satisfy the constraints")
	}
	return nil
}

// resolveScenario loads a scenario either from the store by ID or from
// a YAML file. Exactly one source must be given.
func resolveScenario(cmd *cobra.Command, id, file string) (scenario.Scenario, error) {
	switch {
	case id != "" && file != "":
		return scenario.Scenario{}, errors.New("pass either a scenario ID or --file, not both")
	case id == "" && file == "":
		return scenario.Scenario{}, errors.New("a scenario ID or --file is required")
	case file != "":
		return readScenarioFile(file)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return scenario.Scenario{}, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return scenario.Scenario{}, err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.Get(cmd.Context(), id)
	if errors.Is(err, store.ErrScenarioNotFound) {
		return scenario.Scenario{}, fmt.Errorf("scenario %s not found", id)
	}
	return sc, err
}

func printOptimizeResult(cmd *cobra.Command, result optimizer.Result) {
	cmd.Printf("Status:      %s\n", result.Message)
	cmd.Printf("Iterations:  %d (%d function evaluations)\n",
		result.Iterations, result.FunctionEvaluations)
	if result.RelaxedConstraints {
		cmd.Println("Note:        rate-of-change constraints were relaxed to reach the target")
	}
	if result.Details == nil {
		return
	}

	cmd.Println("\nEmissions by year:")
	for _, ye := range result.Details.EmissionsByYear {
		cmd.Printf("  %d  %12.1f kgCO2e  (%.1f%% reduction)\n",
			ye.Year, ye.Emissions, ye.ReductionPercent)
	}

	s := result.Details.Summary
	cmd.Printf("\nTotal reduction: %.1f%% (target achieved: %v)\n",
		s.TotalReductionPercent, s.TargetAchieved)
	cmd.Printf("Emissions:       %.1f -> %.1f kgCO2e\n", s.InitialEmissions, s.FinalEmissions)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
