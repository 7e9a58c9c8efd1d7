// Package localization maps internal field identifiers to their displayed
// English and Polish column names and answer labels.
package localization

import (
	"errors"
	"fmt"
	"researchkit/lib/textutil"
	"sort"

	"github.com/titanous/json5"
)

type Language string

const (
	English Language = "en"
	Polish  Language = "pl"
)

var ErrLabelNotFound = errors.New("label not found")

type Category int

const (
	Column Category = iota
	Answer
)

func (c Category) String() string {
	if c == Column {
		return "column"
	}
	return "answer"
}

// identifier -> language -> label
type partition map[string]map[Language]string

type Table struct {
	partitions map[Category]partition
}

type document struct {
	EnglishColumns map[string]string `json:"english_columns"`
	PolishColumns  map[string]string `json:"polish_columns"`
	EnglishAnswers map[string]string `json:"english_answers"`
	PolishAnswers  map[string]string `json:"polish_answers"`
}

// Load reads a localization table from a json document with the four
// partitions english_columns, polish_columns, english_answers and
// polish_answers.
func Load(path string) (*Table, error) {
	contents, err := textutil.ReadFile(path, "")
	if err != nil {
		return nil, err
	}
	table, err := Parse([]byte(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func Parse(data []byte) (*Table, error) {
	var doc document
	err := json5.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}

	missing := []string{}
	if doc.EnglishColumns == nil {
		missing = append(missing, "english_columns")
	}
	if doc.PolishColumns == nil {
		missing = append(missing, "polish_columns")
	}
	if doc.EnglishAnswers == nil {
		missing = append(missing, "english_answers")
	}
	if doc.PolishAnswers == nil {
		missing = append(missing, "polish_answers")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("localization table is missing partitions %v", missing)
	}

	return New(
		map[Language]map[string]string{English: doc.EnglishColumns, Polish: doc.PolishColumns},
		map[Language]map[string]string{English: doc.EnglishAnswers, Polish: doc.PolishAnswers},
	), nil
}

// New builds a table out of per-language label maps (language ->
// identifier -> label) for columns and answers.
func New(columns, answers map[Language]map[string]string) *Table {
	build := func(src map[Language]map[string]string) partition {
		p := partition{}
		for lang, labels := range src {
			for id, label := range labels {
				if p[id] == nil {
					p[id] = map[Language]string{}
				}
				p[id][lang] = label
			}
		}
		return p
	}
	return &Table{partitions: map[Category]partition{
		Column: build(columns),
		Answer: build(answers),
	}}
}

// Label looks up the label of `id` in `lang`. The boolean is false on a
// miss, which is distinct from an identifier whose label is empty.
func (t *Table) Label(cat Category, id string, lang Language) (string, bool) {
	labels, ok := t.partitions[cat][id]
	if !ok {
		return "", false
	}
	label, ok := labels[lang]
	return label, ok
}

// Require is Label that turns a miss into ErrLabelNotFound.
func (t *Table) Require(cat Category, id string, lang Language) (string, error) {
	label, ok := t.Label(cat, id, lang)
	if !ok {
		return "", fmt.Errorf("%w: %s %q (%s)", ErrLabelNotFound, cat, id, lang)
	}
	return label, nil
}

// Identifiers returns every identifier of a category, sorted.
func (t *Table) Identifiers(cat Category) []string {
	ids := make([]string, 0, len(t.partitions[cat]))
	for id := range t.partitions[cat] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
