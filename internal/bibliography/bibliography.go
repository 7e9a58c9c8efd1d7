// Package bibliography flags bibliography entries that cite a publisher
// from a published list of potentially predatory publishers.
package bibliography

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"researchkit/lib/textutil"
	"strings"
	"unicode/utf8"
)

var ErrMissingInput = errors.New("missing input")

// LoadBibliography reads one bibliography entry per line. Lines of 5
// characters or less (newline included) and lines starting with '#' are
// ignored, the remaining ones are trimmed.
func LoadBibliography(logger *slog.Logger, path, encoding string) ([]string, error) {
	lines, err := textutil.ReadLines(path, encoding)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: bibliography file does not exist, please create it: %s", ErrMissingInput, path)
	}
	if err != nil {
		return nil, err
	}

	entries := []string{}
	for _, line := range lines {
		if utf8.RuneCountInString(line) <= 5 || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, strings.TrimSpace(line))
	}
	logger.Info("loaded bibliography", "path", path, "entries", len(entries))
	return entries, nil
}

// Match is a publisher name found inside a bibliography entry.
type Match struct {
	Publisher string
	Entry     string
}

func (m Match) String() string {
	return fmt.Sprintf("publisher '%s' found in bibliography: %s", m.Publisher, m.Entry)
}

// FindMatches reports every (publisher, entry) pair where the publisher
// name occurs in the entry, case sensitive. Matches are ordered by entry
// first, then by publisher. An empty publisher name never matches, although
// it is a substring of every entry.
func FindMatches(logger *slog.Logger, publishers, entries []string) []Match {
	matches := []Match{}
	for _, entry := range entries {
		logger.Debug("checking bibliography entry", "entry", entry)
		for _, publisher := range publishers {
			if publisher == "" || !strings.Contains(entry, publisher) {
				continue
			}
			logger.Info("predatory publisher found", "publisher", publisher, "entry", entry)
			matches = append(matches, Match{Publisher: publisher, Entry: entry})
		}
	}
	return matches
}
