package commands

import (
	"fmt"
	"os"
	"researchkit/internal/survey"
	"researchkit/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(surveyCmd)
}

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Aggregates the english and polish survey exports per condition and writes statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		run := telemetry.StartRun("survey")

		pipeline := survey.NewPipeline(logger, cfg.Survey, os.Stdout)
		err := pipeline.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("survey run failed: %w", err)
		}

		run.Finish(cmd.Context(), logger)
		return nil
	},
}
