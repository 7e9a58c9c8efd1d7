package commands

import (
	"context"
	"fmt"
	"log/slog"
	"researchkit/internal/bibliography"
	"researchkit/internal/grades"
	"researchkit/internal/survey"
	"researchkit/lib/configutil"
	"researchkit/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	// truncated on every run
	LogPath      string              `json:"log"`
	Survey       survey.Config       `json:"survey"`
	Bibliography bibliography.Config `json:"bibliography"`
	Grades       grades.Config       `json:"grades"`
}

func DefaultConfig() Config {
	return Config{
		LogPath:      "./log.log",
		Survey:       survey.DefaultConfig(),
		Bibliography: bibliography.DefaultConfig(),
		Grades:       grades.DefaultConfig(),
	}
}

var (
	configPath string
	verbose    bool

	cfg      Config
	logger   *slog.Logger
	closeLog func() error
	tel      telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "researchkit",
	Short: "researchkit runs small research helpers: survey statistics, bibliography checks and grade averages.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = configutil.ReadWithDefaults(configPath, DefaultConfig())
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		logger, closeLog, err = telemetry.InitSlog(cfg.LogPath, verbose)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}

		tel, err = telemetry.SetupFromEnv(cmd.Context(), "researchkit:"+cmd.Name())
		if err != nil {
			logger.Warn("failed to setup telemetry, continuing without it", "err", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "researchkit.json5", "path to the json5 config, <name>.local.json5 next to it overrides it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// finish flushes telemetry and closes the log file, it runs whether or not
// the command succeeded.
func finish(ctx context.Context) {
	err := tel.Shutdown(context.WithoutCancel(ctx))
	if err != nil && logger != nil {
		logger.Warn("failed to flush telemetry", "err", err)
	}
	tel = telemetry.Telemetry{}
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
}

// ExecuteContext runs the command selected by the process arguments. A
// failed command is logged before the log file is closed.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && logger != nil {
		logger.Error("command failed", "err", err)
	}
	finish(ctx)
	return err
}
