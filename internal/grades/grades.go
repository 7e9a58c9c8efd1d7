// Package grades turns a saved grade report page into per semester subject
// and grade listings with averages.
package grades

import (
	"errors"
	"fmt"
	"log/slog"
	"researchkit/lib/textutil"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

var ErrNoGrades = errors.New("zero grades were extracted")
var ErrMissingInput = errors.New("missing input")

// Cell is a table cell reduced to what the extractor looks at.
type Cell struct {
	Text string
	// text of the first link in the cell, HasAnchor is false when there is
	// no link
	Anchor    string
	HasAnchor bool
	// texts of every span in the cell
	Spans []string
}

type Subject struct {
	Name   string
	Grades []string
	// set when the subject has more than one grade and they could be
	// averaged
	Average    float64
	HasAverage bool
}

// Block renders the subject as "[name]" followed by one "* grade" line per
// grade.
func (s Subject) Block() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(s.Name)
	if s.HasAverage {
		sb.WriteString(" | average: ")
		sb.WriteString(textutil.FormatFloat(s.Average))
	}
	sb.WriteString("]\n")
	for i, g := range s.Grades {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("* ")
		sb.WriteString(g)
	}
	return sb.String()
}

type Semester struct {
	Title    string
	Subjects []Subject
}

type Result struct {
	// mean of every counted grade, rounded to 2 decimals
	Average   float64
	Semesters []Semester
}

// semesterTitle strips the toggle text (" - hide") trailing every semester
// header.
func semesterTitle(text string) string {
	title := []rune(strings.TrimSpace(strings.ReplaceAll(text, "\n", " ")))
	if len(title) <= 7 {
		return ""
	}
	return string(title[:len(title)-7])
}

// excluded reports grades that never count towards an average: retaken
// grades in parentheses and pass marks starting with 'z'.
func excluded(grade string) bool {
	return strings.HasPrefix(grade, "z") || strings.HasPrefix(grade, "(")
}

// countedGrades parses every grade that counts towards an average. An empty
// grade or one that is not a number fails the whole row.
func countedGrades(grades []string) ([]float64, error) {
	var values []float64
	for _, g := range grades {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, fmt.Errorf("empty grade")
		}
		if excluded(g) {
			continue
		}
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseTable walks the rows of the grade table. Single cell rows open a
// semester, four cell rows are subjects of the current semester, every other
// row is ignored.
func ParseTable(logger *slog.Logger, rows [][]Cell) (Result, error) {
	var semesters []Semester
	index := map[string]int{}
	var total []float64
	currentTitle := ""

	for _, row := range rows {
		switch len(row) {
		case 1:
			currentTitle = semesterTitle(row[0].Text)
			logger.Debug("set semester title", "title", currentTitle)
		case 4:
			if len([]rune(currentTitle)) < 3 {
				logger.Error("found grade but semester title is not available, skipping it", "title", currentTitle)
				continue
			}

			name := row[0].Text
			if row[0].HasAnchor {
				name = row[0].Anchor
			}
			grades := make([]string, len(row[2].Spans))
			for i, s := range row[2].Spans {
				grades[i] = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
			}
			subject := Subject{Name: name, Grades: grades}

			values, err := countedGrades(grades)
			switch {
			case err != nil:
				logger.Warn("failed to convert grades to numbers, leaving them as-is", "subject", name, "grades", grades, "err", err)
			case len(grades) > 1 && len(values) == 0:
				logger.Warn("no grade can be averaged, leaving them as-is", "subject", name, "grades", grades)
			default:
				total = append(total, values...)
				if len(grades) > 1 {
					subject.Average = scalar.RoundEven(stat.Mean(values, nil), 2)
					subject.HasAverage = true
					logger.Debug("calculated subject average", "subject", name, "average", subject.Average)
				}
			}

			i, ok := index[currentTitle]
			if !ok {
				i = len(semesters)
				index[currentTitle] = i
				semesters = append(semesters, Semester{Title: currentTitle})
			}
			semesters[i].Subjects = append(semesters[i].Subjects, subject)
		}
	}

	if len(total) == 0 {
		return Result{}, fmt.Errorf("%w, please check if the semester titles are available", ErrNoGrades)
	}
	result := Result{
		Average:   scalar.RoundEven(stat.Mean(total, nil), 2),
		Semesters: semesters,
	}
	logger.Info("processed grades", "average", result.Average, "grades", len(total), "semesters", len(semesters))
	return result, nil
}
