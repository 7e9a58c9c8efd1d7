package bibliography

import (
	"context"
	"fmt"
	"log/slog"
	"researchkit/lib/restyutil"
)

// Run downloads the publisher list, checks the bibliography against it and
// writes the report. The matches are returned as well.
func Run(ctx context.Context, logger *slog.Logger, cfg Config) ([]Match, error) {
	ctx, span := tracer.Start(ctx, "bibliography.Run")
	defer span.End()

	logger = logger.With("component", "bibliography")

	client, err := restyutil.NewClient(restyutil.ClientOptions{
		Timeout:          cfg.Timeout(),
		DumpDir:          cfg.DumpDir,
		CloudflareBypass: cfg.CloudflareBypass,
		Logger:           logger,
		Tracer:           tracer,
	})
	if err != nil {
		return nil, err
	}

	publishers, err := FetchPublishers(ctx, logger, client, cfg.URL)
	if err != nil {
		return nil, err
	}
	entries, err := LoadBibliography(logger, cfg.Bibliography, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	matches := FindMatches(logger, publishers, entries)
	logger.Info(FormatReport(matches))

	err = WriteReport(cfg.Report, matches)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	logger.Info("saved report", "path", cfg.Report, "matches", len(matches))
	return matches, nil
}
