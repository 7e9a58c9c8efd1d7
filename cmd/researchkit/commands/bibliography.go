package commands

import (
	"fmt"
	"researchkit/internal/bibliography"
	"researchkit/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	bibliographyCmd.Flags().StringVar(&bibliographyURL, "url", "", "overrides the url of the publisher list")
	rootCmd.AddCommand(bibliographyCmd)
}

var bibliographyURL string

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography [--url <publisher list>]",
	Short: "Flags bibliography entries citing a publisher from a list of potentially predatory publishers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		run := telemetry.StartRun("bibliography")

		bibCfg := cfg.Bibliography
		if bibliographyURL != "" {
			bibCfg.URL = bibliographyURL
		}
		_, err := bibliography.Run(cmd.Context(), logger, bibCfg)
		if err != nil {
			return fmt.Errorf("bibliography check failed: %w", err)
		}

		run.Finish(cmd.Context(), logger)
		return nil
	},
}
