package bibliography

import (
	"os"
	"path/filepath"
	"strings"
)

const reportHeader = "\n--- list of potentailly predatory publishers found in your bibliography ---\n"

// FormatReport renders the match report: a row of 60 asterisks, the header
// and one line per match.
func FormatReport(matches []Match) string {
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = m.String()
	}
	return strings.Repeat("*", 60) + reportHeader + strings.Join(lines, "\n")
}

// WriteReport writes the match report to `path`, creating parent
// directories.
func WriteReport(path string, matches []Match) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FormatReport(matches)+"\n"), 0644)
}
