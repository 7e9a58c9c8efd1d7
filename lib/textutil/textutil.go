package textutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Closest returns the candidate most similar to `name` by Jaro-Winkler
// distance over normalized names, it returns "" when there are no candidates.
func Closest(name string, candidates []string) (string, float64) {
	normalized := NormalizeName(name)

	var best string
	var bestScore float64
	for _, c := range candidates {
		score := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

// Encoding resolves an encoding by its WHATWG label ("utf-8",
// "windows-1250", "iso-8859-2", ...), an empty label means utf-8.
func Encoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewReader decodes `r` from the encoding named by `label` into utf-8, a
// leading utf-8 byte order mark is dropped.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := Encoding(label)
	if err != nil {
		return nil, err
	}
	buffered := bufio.NewReader(r)
	head, err := buffered.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		buffered.Discard(len(utf8BOM))
	}
	return transform.NewReader(buffered, enc.NewDecoder()), nil
}

// ReadFile reads the whole file at `path` decoded from `label` into utf-8.
func ReadFile(path string, label string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader, err := NewReader(file, label)
	if err != nil {
		return "", err
	}
	contents, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// ReadLines reads the file at `path` and splits it into lines, each line
// keeps its trailing "\n" (if any) like python's readlines().
func ReadLines(path string, label string) ([]string, error) {
	contents, err := ReadFile(path, label)
	if err != nil {
		return nil, err
	}
	if contents == "" {
		return nil, nil
	}
	lines := strings.SplitAfter(contents, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// FormatFloat formats `v` the shortest way that still round trips, whole
// numbers keep a trailing ".0" (2022 -> "2022.0", 22.5 -> "22.5"), NaN is
// written as "nan".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
