package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/internal/printer"
	"github.com/dyluth/picky/internal/scenario"
	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario without running its steps",
	Long: `Load a scenario, check its structure and build its containers.

Steps are checked for consistency with the containers they name but are
not applied.

Examples:
  picky validate
  picky validate -f scenarios/colours.yml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "picky.yml", "Scenario file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(validateFile)
	if err != nil {
		return err
	}

	r := scenario.New(cfg)
	if err := r.Build(context.Background()); err != nil {
		return printer.ErrorWithContext(
			"invalid population",
			err.Error(),
			map[string]string{"File": validateFile},
			[]string{"Check the items of the container named in the error"},
		)
	}

	printer.Success("%s is valid: %d containers, %d steps\n", validateFile, len(cfg.Containers), len(cfg.Steps))
	return nil
}

// loadScenario loads a scenario file, printing a formatted error on failure.
func loadScenario(path string) (*config.ScenarioConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"failed to load scenario",
			err.Error(),
			map[string]string{"File": path},
			[]string{
				fmt.Sprintf("Fix the scenario and check it with:\n  picky validate -f %s", path),
				"Create an example scenario:\n  picky init",
			},
		)
	}
	return cfg, nil
}
