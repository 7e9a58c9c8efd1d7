package survey

import (
	"fmt"
	"log/slog"
	"researchkit/lib/textutil"
	"strings"
	"unicode/utf8"
)

// LoadColumnLabels reads the condition label file, one label per rating
// column in csv order. Lines of 3 characters or less (newline included) and
// lines starting with '#' are ignored. A line is expected to look like
// "label = question", only the label is kept.
func LoadColumnLabels(logger *slog.Logger, path, encoding string) ([]string, error) {
	lines, err := textutil.ReadLines(path, encoding)
	if err != nil {
		return nil, fmt.Errorf("read column labels: %w", err)
	}

	var labels []string
	skipped := 0
	for _, line := range lines {
		if utf8.RuneCountInString(line) <= 3 || strings.HasPrefix(line, "#") {
			skipped++
			continue
		}
		line = strings.TrimSpace(line)

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			logger.Warn(
				"column label did not split at '=' into two parts, using the whole line",
				"line", line,
			)
			labels = append(labels, line)
			continue
		}
		labels = append(labels, strings.TrimSpace(parts[0]))
	}

	logger.Info("loaded column labels", "path", path, "labels", len(labels), "skipped_lines", skipped)
	return labels, nil
}
