package grades

import (
	"context"
	"fmt"
	"log/slog"
)

type Config struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	// WHATWG encoding label of the saved page
	Encoding string `json:"encoding"`
}

func DefaultConfig() Config {
	return Config{
		Input:    "./my_grades.html",
		Output:   "./output.txt",
		Encoding: "utf-8",
	}
}

// Run extracts the grades of the configured page and writes the report.
func Run(ctx context.Context, logger *slog.Logger, cfg Config) (Result, error) {
	ctx, span := tracer.Start(ctx, "grades.Run")
	defer span.End()

	logger = logger.With("component", "grades")

	result, err := ExtractFile(ctx, logger, cfg.Input, cfg.Encoding)
	if err != nil {
		return Result{}, err
	}
	err = WriteReport(cfg.Output, result)
	if err != nil {
		return Result{}, fmt.Errorf("write report: %w", err)
	}
	logger.Info("saved grades", "path", cfg.Output)
	return result, nil
}
