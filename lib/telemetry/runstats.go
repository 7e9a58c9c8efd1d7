package telemetry

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("researchkit.telemetry")
var runDuration, _ = meter.Float64Histogram("run_duration_seconds")

// RunStats records how long a single pipeline run took together with the
// resource usage of the process.
type RunStats struct {
	name  string
	start time.Time
}

func StartRun(name string) RunStats {
	return RunStats{name: name, start: time.Now()}
}

// Finish logs "program ended" with the elapsed time, rss and cpu time of the
// current process. process stats are best effort.
func (r RunStats) Finish(ctx context.Context, logger *slog.Logger) {
	elapsed := time.Since(r.start).Seconds()
	runDuration.Record(ctx, elapsed)

	attrs := []any{
		"run", r.name,
		"seconds", float64(int(elapsed*1000)) / 1000,
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err == nil {
		mem, err := proc.MemoryInfoWithContext(ctx)
		if err == nil {
			attrs = append(attrs, "rss_mb", mem.RSS/1_000_000)
		}
		times, err := proc.TimesWithContext(ctx)
		if err == nil {
			attrs = append(attrs, "cpu_seconds", times.User+times.System)
		}
	} else {
		logger.DebugContext(ctx, "failed to read process stats", "err", err)
	}

	logger.InfoContext(ctx, "program ended", attrs...)
}
