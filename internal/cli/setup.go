package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/engine/cache"
	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

// openStore opens the scenario database named by the configuration.
// Callers own the returned store and must Close it.
func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open scenario store: %w", err)
	}
	return st, nil
}

// newEngine assembles a calculation engine from the configuration.
func newEngine(cfg *config.Config, metrics *engine.Metrics) *engine.Engine {
	return engine.New(engine.Config{
		Cache:   cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL()),
		Metrics: metrics,
		Workers: cfg.Engine.Workers,
		Curve:   cfg.Adoption,
		Logger:  logger,
	})
}

// scenarioFile is the YAML shape accepted by --file flags.
type scenarioFile struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Parameters  scenario.Parameters `yaml:"parameters"`
}

// readScenarioFile loads a scenario definition from a YAML file.
func readScenarioFile(path string) (scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	// An omitted enable_constraints key means true; an explicit false in
	// the file still wins.
	var file scenarioFile
	file.Parameters.EnableConstraints = true
	if err := yaml.Unmarshal(data, &file); err != nil {
		return scenario.Scenario{}, fmt.Errorf("parse scenario file: %w", err)
	}

	return scenario.Scenario{
		Name:        file.Name,
		Description: file.Description,
		Parameters:  file.Parameters,
	}, nil
}

// printValidation renders a validation report in the fixed
// errors/warnings/suggestions order.
func printValidation(cmd *cobra.Command, v scenario.Validation) {
	if v.Valid {
		cmd.Println("Scenario parameters are valid")
	} else {
		cmd.Println("Scenario parameters are INVALID")
	}
	for _, e := range v.Errors {
		cmd.Printf("  error: %s\n", e)
	}
	for _, w := range v.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
	for _, s := range v.Suggestions {
		cmd.Printf("  suggestion: %s\n", s)
	}
}
