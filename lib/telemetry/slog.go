package telemetry

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// InitSlog installs the default slog logger for a single run, writing to
// stdout and, when logPath is not empty, to logPath as well. the log file is
// truncated on every run.
//
// the returned function closes the log file.
func InitSlog(logPath string, verbose bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	closer := func() error { return nil }

	if logPath != "" {
		dir := filepath.Dir(logPath)
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, closer, err
		}
		file, err := os.Create(logPath)
		if err != nil {
			return nil, closer, err
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file.Close
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}

// Discard returns a logger that drops everything, used by tests and callers
// that do not care about logs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
