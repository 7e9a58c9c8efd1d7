package grades

import (
	"os"
	"path/filepath"
	"researchkit/lib/textutil"
	"strings"
)

// FormatReport renders the overall average followed by one block per
// semester, each block lists the semester's subjects and their grades.
func FormatReport(result Result) string {
	var sb strings.Builder
	sb.WriteString("Total average grade overall: ")
	sb.WriteString(textutil.FormatFloat(result.Average))
	for _, sem := range result.Semesters {
		blocks := make([]string, len(sem.Subjects))
		for i, s := range sem.Subjects {
			blocks[i] = s.Block()
		}
		sb.WriteString("\n\n\n## ")
		sb.WriteString(sem.Title)
		sb.WriteString(" ##\n")
		sb.WriteString(strings.Join(blocks, "\n"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func WriteReport(path string, result Result) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FormatReport(result)), 0644)
}
