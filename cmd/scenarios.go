package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/registry"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Inspect the scenario table",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios with category and probability",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		list := env.Scenarios.Scenarios
		switch model.Category(category) {
		case "":
		case model.CategoryCore:
			list = env.Scenarios.Core()
		case model.CategoryStress:
			list = env.Scenarios.Stress()
		default:
			return eris.Errorf("unknown category %q (want core or stress)", category)
		}

		formatScenarioList(os.Stdout, list)
		return nil
	},
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <scenario-id>",
	Short: "Show a scenario's narrative and national path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		s, err := env.Scenarios.Get(model.ScenarioID(args[0]))
		if err != nil {
			return err
		}
		formatScenario(os.Stdout, s, env.Modeler.Path(s, cfg.Model.Years))
		return nil
	},
}

var scenariosExportCmd = &cobra.Command{
	Use:   "export <path.yaml|path.json>",
	Short: "Write the active scenario table to a file that model.scenarios_file can load",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if err := registry.WriteScenariosFile(args[0], env.Scenarios.Scenarios); err != nil {
			return err
		}
		zap.L().Info("scenarios exported",
			zap.String("command", "scenarios export"),
			zap.String("path", args[0]),
			zap.Int("scenarios", len(env.Scenarios.Scenarios)),
		)
		return nil
	},
}

func init() {
	scenariosListCmd.Flags().String("category", "", "filter by category (core, stress)")

	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosShowCmd)
	scenariosCmd.AddCommand(scenariosExportCmd)
	rootCmd.AddCommand(scenariosCmd)
}
