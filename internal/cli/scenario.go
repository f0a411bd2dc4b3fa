package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

// newScenarioCmd creates the scenario command group with management
// subcommands backed by the local store.
func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scenario", Short: "Scenario management commands"}
	cmd.AddCommand(
		NewScenarioCreateCmd(), NewScenarioListCmd(),
		NewScenarioGetCmd(), NewScenarioDeleteCmd(),
	)
	return cmd
}

// NewScenarioCreateCmd creates the scenario create command.
func NewScenarioCreateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Store a new scenario from a YAML file",
		Example: `  # Store a scenario definition
  pathwise scenario create --file scenario.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarioCreate(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runScenarioCreate(cmd *cobra.Command, file string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := readScenarioFile(file)
	if err != nil {
		return err
	}
	if sc.Name == "" {
		return errors.New("scenario file must set a name")
	}

	if v := scenario.Validate(sc.Parameters); !v.Valid {
		printValidation(cmd, v)
		return fmt.Errorf("scenario has %d validation error(s)", len(v.Errors))
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	created, err := st.Create(cmd.Context(), sc)
	if err != nil {
		return fmt.Errorf("store scenario: %w", err)
	}

	logger.Info().Str("scenario_id", created.ID).Str("operation", "create").Msg("scenario stored")
	cmd.Printf("Created scenario %s (%s)\n", created.ID, created.Name)
	return nil
}

// NewScenarioListCmd creates the scenario list command.
func NewScenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios",
		RunE:  runScenarioList,
	}
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	all, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}
	if len(all) == 0 {
		cmd.Println("No scenarios stored")
		return nil
	}

	for _, sc := range all {
		s := scenario.Summarize(sc)
		status := "valid"
		if !s.Validation.Valid {
			status = "invalid"
		}
		cmd.Printf("%s  %-24s  target %.0f%%  years %d  types %d  [%s]\n",
			s.ID, s.Name, s.TargetReductionPct, s.AnalysisYears, len(s.VehicleCategories), status)
	}
	return nil
}

// NewScenarioGetCmd creates the scenario get command.
func NewScenarioGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <scenario-id>",
		Short: "Show one stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioGet(cmd, args[0])
		},
	}
}

func runScenarioGet(cmd *cobra.Command, id string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			return fmt.Errorf("scenario %s not found", id)
		}
		return err
	}

	cmd.Printf("ID:          %s\n", sc.ID)
	cmd.Printf("Name:        %s\n", sc.Name)
	if sc.Description != "" {
		cmd.Printf("Description: %s\n", sc.Description)
	}
	cmd.Printf("Years:       %v\n", sc.Parameters.Years)
	cmd.Printf("Target:      %.0f%% reduction\n", sc.Parameters.TargetReduction*100)
	cmd.Printf("Max change:  %.0f%% per year\n", sc.Parameters.MaxAnnualChange*100)
	cmd.Printf("Types:       %v\n", sc.Parameters.VehicleTypes)
	cmd.Printf("Constraints: %v\n", sc.Parameters.EnableConstraints)
	cmd.Printf("Updated:     %s\n", sc.UpdatedAt.Format("2006-01-02 15:04:05"))

	printValidation(cmd, scenario.Validate(sc.Parameters))
	return nil
}

// NewScenarioDeleteCmd creates the scenario delete command.
func NewScenarioDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scenario-id>",
		Short: "Delete a stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioDelete(cmd, args[0])
		},
	}
}

func runScenarioDelete(cmd *cobra.Command, id string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			return fmt.Errorf("scenario %s not found", id)
		}
		return err
	}

	logger.Info().Str("scenario_id", id).Str("operation", "delete").Msg("scenario removed")
	cmd.Printf("Deleted scenario %s\n", id)
	return nil
}
