package survey

import (
	"os"
	"path/filepath"
	"strings"
)

// FormatStats renders the report: the header line, then every section as
// "[name]" after a blank line followed by tab indented "key = value" lines.
func FormatStats(header string, sections []Section) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, s := range sections {
		sb.WriteString("\n[")
		sb.WriteString(s.Name)
		sb.WriteString("]\n")
		for _, e := range s.Entries {
			sb.WriteString("\t")
			sb.WriteString(e.Key)
			sb.WriteString(" = ")
			sb.WriteString(e.Value)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteStats writes the report to `path`, creating parent directories.
func WriteStats(path, header string, sections []Section) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FormatStats(header, sections)), 0644)
}
