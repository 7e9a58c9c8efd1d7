package commands

import (
	"fmt"
	"researchkit/internal/grades"
	"researchkit/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gradesCmd)
}

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Averages the grades of a saved grade report page per subject and overall.",
	RunE: func(cmd *cobra.Command, args []string) error {
		run := telemetry.StartRun("grades")

		result, err := grades.Run(cmd.Context(), logger, cfg.Grades)
		if err != nil {
			return fmt.Errorf("grade extraction failed: %w", err)
		}
		logger.Info("calculated overall average", "average", result.Average)

		run.Finish(cmd.Context(), logger)
		return nil
	},
}
