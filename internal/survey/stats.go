package survey

import (
	"fmt"
	"log/slog"
	"math"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"researchkit/lib/textutil"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Entry is a single "key = value" line of the statistics report.
type Entry struct {
	Key   string
	Value string
}

// Section is a named group of entries, written as "[name]".
type Section struct {
	Name    string
	Entries []Entry
}

// Summary holds descriptive statistics rounded to 2 decimals. Fields are
// NaN when there are not enough values to compute them.
type Summary struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// NumericSummary computes the mean, extremes and sample standard deviation
// (n-1 denominator) of `values`.
func NumericSummary(values []float64) Summary {
	if len(values) == 0 {
		return Summary{Mean: math.NaN(), Min: math.NaN(), Max: math.NaN(), StdDev: math.NaN()}
	}
	return Summary{
		Mean:   scalar.RoundEven(stat.Mean(values, nil), 2),
		Min:    scalar.RoundEven(floats.Min(values), 2),
		Max:    scalar.RoundEven(floats.Max(values), 2),
		StdDev: scalar.RoundEven(stat.StdDev(values, nil), 2),
	}
}

// numbers returns the numeric cells of a column, other cells are skipped.
func numbers(ds *tabular.Dataset, column string) ([]float64, error) {
	values, ok := ds.Lookup(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	var out []float64
	for _, v := range values {
		f, ok := tabular.ParseFloat(v)
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// LearningAge summarizes the age at which respondents began learning
// English.
func LearningAge(ds *tabular.Dataset, column string) ([]Entry, error) {
	values, err := numbers(ds, column)
	if err != nil {
		return nil, err
	}
	s := NumericSummary(values)
	return []Entry{
		{Key: "began learning english: mean age", Value: textutil.FormatFloat(s.Mean)},
		{Key: "began learning english: min age", Value: textutil.FormatFloat(s.Min)},
		{Key: "began learning english: max age", Value: textutil.FormatFloat(s.Max)},
		{Key: "began learning english: stdev", Value: textutil.FormatFloat(s.StdDev)},
	}, nil
}

// Age converts birth years into ages relative to `currentYear`. The oldest
// respondent has the smallest birth year, so the minimum age comes from the
// maximum birth year and the other way around. The standard deviation is the
// one of the birth years.
func Age(ds *tabular.Dataset, column string, currentYear int) ([]Entry, error) {
	values, err := numbers(ds, column)
	if err != nil {
		return nil, err
	}
	s := NumericSummary(values)
	year := float64(currentYear)
	return []Entry{
		{Key: "age: mean age", Value: textutil.FormatFloat(scalar.RoundEven(year-s.Mean, 2))},
		{Key: "age: min age", Value: textutil.FormatFloat(scalar.RoundEven(year-s.Max, 2))},
		{Key: "age: max age", Value: textutil.FormatFloat(scalar.RoundEven(year-s.Min, 2))},
		{Key: "age: stdev", Value: textutil.FormatFloat(s.StdDev)},
	}, nil
}

// Breakdown returns the share of every distinct non-empty answer of a
// column as a percentage with one decimal, most frequent answer first and
// ties in order of first appearance.
func Breakdown(ds *tabular.Dataset, column string) ([]Entry, error) {
	values, ok := ds.Lookup(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	counts := map[string]int{}
	var order []string
	total := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
		total++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	entries := make([]Entry, len(order))
	for i, v := range order {
		share := scalar.RoundEven(float64(counts[v])/float64(total)*100, 1)
		entries[i] = Entry{Key: v, Value: textutil.FormatFloat(share) + "%"}
	}
	return entries, nil
}

// Participants reports the size of both groups.
func Participants(en, pl *tabular.Dataset) []Entry {
	return []Entry{
		{Key: "english group", Value: strconv.Itoa(en.Rows())},
		{Key: "polish group", Value: strconv.Itoa(pl.Rows())},
	}
}

// Statistics computes every enabled report section for the cleaned English
// and Polish datasets.
func Statistics(
	logger *slog.Logger,
	en, pl *tabular.Dataset,
	table *localization.Table,
	enabled Sections,
	currentYear int,
) ([]Section, error) {
	var sections []Section

	if enabled.ParticipantSize {
		sections = append(sections, Section{Name: "participant size", Entries: Participants(en, pl)})
	}

	perGroup := func(toggle bool, id, title string, fn func(ds *tabular.Dataset, column string) ([]Entry, error)) error {
		if !toggle {
			return nil
		}
		column, err := table.Require(localization.Column, id, localization.English)
		if err != nil {
			return err
		}
		enEntries, err := fn(en, column)
		if err != nil {
			return fmt.Errorf("en survey: %w", err)
		}
		plEntries, err := fn(pl, column)
		if err != nil {
			return fmt.Errorf("pl survey: %w", err)
		}
		sections = append(sections,
			Section{Name: "en: " + title, Entries: enEntries},
			Section{Name: "pl: " + title, Entries: plEntries},
		)
		logger.Info("calculated statistics", "section", title, "en", enEntries, "pl", plEntries)
		return nil
	}

	age := func(ds *tabular.Dataset, column string) ([]Entry, error) {
		return Age(ds, column, currentYear)
	}

	steps := []struct {
		toggle bool
		id     string
		title  string
		fn     func(ds *tabular.Dataset, column string) ([]Entry, error)
	}{
		{enabled.BeganEnglish, "age_begin_eng", "began to learn", LearningAge},
		{enabled.Age, "birth_year", "age", age},
		{enabled.Gender, "what_gender", "gender", Breakdown},
		{enabled.City, "how_big_city", "city size", Breakdown},
		{enabled.UniYear, "which_uni_year", "uni year", Breakdown},
	}
	for _, s := range steps {
		err := perGroup(s.toggle, s.id, s.title, s.fn)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("calculated statistics for participants", "sections", len(sections))
	return sections, nil
}
