package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/report"
	"github.com/sells-group/nss-cli/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score regions for risk or opportunity under each scenario",
	Long: `Builds the region × scenario heatmap for the chosen rubric.

Risk combines climate, economic, social and infrastructure dimensions;
opportunity combines economic, innovation, sustainability and quality of
life. Scores run 0 to 10 and highlights list combinations at or above 7.

Examples:
  score --kind risk
  score --kind opportunity --scenario vision2030,accelerated --format csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("kind")
		format, _ := cmd.Flags().GetString("format")
		ids, _ := cmd.Flags().GetStringSlice("scenario")
		if err := checkFormat(format); err != nil {
			return err
		}

		return runScore(os.Stdout, env, model.AssessmentKind(kind), toScenarioIDs(ids), format)
	},
}

func runScore(out io.Writer, env *modelEnv, kind model.AssessmentKind, ids []model.ScenarioID, format string) error {
	selected, err := env.Scenarios.Select(ids)
	if err != nil {
		return err
	}
	cols := make([]model.ScenarioID, len(selected))
	for i, s := range selected {
		cols[i] = s.ID
	}

	var h model.Heatmap
	switch kind {
	case model.KindRisk:
		h = env.Scorer.RiskHeatmap(env.Regions.Regions, cols)
	case model.KindOpportunity:
		h = env.Scorer.OpportunityHeatmap(env.Regions.Regions, cols)
	default:
		return eris.Errorf("unknown kind %q (want risk or opportunity)", kind)
	}

	top, mean := scorer.HighestMeanScenario(h)
	zap.L().Debug("heatmap scored",
		zap.String("kind", string(kind)),
		zap.Int("cells", len(h.Regions)*len(h.Scenarios)),
		zap.String("top_scenario", string(top)),
		zap.Float64("top_mean", mean),
	)

	switch format {
	case formatCSV:
		return report.WriteHeatmapCSV(out, h)
	case formatJSON:
		return report.WriteJSON(out, struct {
			Heatmap    model.Heatmap     `json:"heatmap"`
			Highlights []model.Highlight `json:"highlights"`
		}{h, env.Scorer.Highlights(h)})
	}
	formatHeatmap(out, h, env.Scorer.Highlights(h))
	return nil
}

func init() {
	scoreCmd.Flags().String("kind", string(model.KindRisk), "rubric (risk, opportunity)")
	scoreCmd.Flags().StringSlice("scenario", nil, "scenario IDs (default all)")
	scoreCmd.Flags().String("format", formatTable, "output format (table, csv, json)")
	rootCmd.AddCommand(scoreCmd)
}
