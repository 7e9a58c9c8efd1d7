package survey

import (
	"errors"
	"fmt"
	"log/slog"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"researchkit/lib/textutil"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

var ErrColumnCountMismatch = errors.New("condition label count does not match rating column count")
var ErrMissingColumn = errors.New("column missing from survey")

// LanguageColumn holds the survey language tag of every respondent.
const LanguageColumn = "Language"

// DemographicIDs are the columns carried over from the raw survey into the
// aggregated dataset, in output order.
var DemographicIDs = []string{
	"is_l1",
	"is_l2",
	"how_often",
	"age_begin_eng",
	"birth_year",
	"what_gender",
	"how_big_city",
	"which_uni_year",
}

// RenamePlan assigns a condition label to every rating column of a dataset,
// the i-th column whose header contains RatingLabel is renamed to Labels[i].
type RenamePlan struct {
	RatingLabel string
	Labels      []string
}

// NewRenamePlan checks that there is exactly one label per column whose
// header contains `ratingLabel`.
func NewRenamePlan(ds *tabular.Dataset, ratingLabel string, labels []string) (RenamePlan, error) {
	block := ratingBlock(ds, ratingLabel)
	if block.Width() != len(labels) {
		return RenamePlan{}, fmt.Errorf(
			"%w: %d labels, %d rating columns",
			ErrColumnCountMismatch, len(labels), block.Width(),
		)
	}
	return RenamePlan{
		RatingLabel: ratingLabel,
		Labels:      append([]string(nil), labels...),
	}, nil
}

// Apply returns the rating block of `ds` with the planned labels as headers.
func (p RenamePlan) Apply(ds *tabular.Dataset) (*tabular.Dataset, error) {
	return ratingBlock(ds, p.RatingLabel).WithNames(p.Labels)
}

// ratingBlock keeps the columns whose header contains `ratingLabel`, an empty
// label matches nothing.
func ratingBlock(ds *tabular.Dataset, ratingLabel string) *tabular.Dataset {
	if ratingLabel == "" {
		return ds.Select(func(string) bool { return false })
	}
	return ds.SelectContaining(ratingLabel)
}

// GroupMeans averages identically named columns row by row. Columns of the
// result are the distinct names in ascending order. Cells that are not
// numbers are ignored, a row without any number in a group gets an empty
// cell.
func GroupMeans(ds *tabular.Dataset, decimals int) *tabular.Dataset {
	names := ds.Names()
	groups := ds.GroupNames()
	columns := make([]tabular.Column, len(groups))
	for g, group := range groups {
		var members []int
		for i, name := range names {
			if name == group {
				members = append(members, i)
			}
		}

		values := make([]string, ds.Rows())
		row := make([]float64, 0, len(members))
		for r := range values {
			row = row[:0]
			for _, c := range members {
				v, ok := ds.Float(r, c)
				if ok {
					row = append(row, v)
				}
			}
			if len(row) == 0 {
				continue
			}
			values[r] = textutil.FormatFloat(scalar.RoundEven(stat.Mean(row, nil), decimals))
		}
		columns[g] = tabular.Column{Name: group, Values: values}
	}

	out, _ := tabular.FromColumns(columns...)
	return out
}

// Means builds the condition aggregated dataset of one survey: the language
// tag, the mean of every condition and the demographic columns. `ds` must
// already carry English headers.
func Means(
	logger *slog.Logger,
	ds *tabular.Dataset,
	labels []string,
	table *localization.Table,
	lang localization.Language,
	decimals int,
) (*tabular.Dataset, error) {
	ratingLabel, err := table.Require(localization.Column, RatingID, localization.English)
	if err != nil {
		return nil, err
	}

	plan, err := NewRenamePlan(ds, ratingLabel, labels)
	if err != nil {
		return nil, fmt.Errorf("%s survey: %w", lang, err)
	}
	renamed, err := plan.Apply(ds)
	if err != nil {
		return nil, fmt.Errorf("%s survey: %w", lang, err)
	}
	logger.Info("renamed rating columns to condition labels", "survey", lang, "columns", renamed.Width())

	means := GroupMeans(renamed, decimals)
	out, err := means.Insert(0, ds.Constant(LanguageColumn, string(lang)))
	if err != nil {
		return nil, err
	}
	for _, id := range DemographicIDs {
		name, err := table.Require(localization.Column, id, localization.English)
		if err != nil {
			return nil, err
		}
		values, ok := ds.Lookup(name)
		if !ok {
			hint, _ := textutil.Closest(name, ds.Names())
			return nil, fmt.Errorf(
				"%w: %s survey has no column %q (closest: %q)",
				ErrMissingColumn, lang, name, hint,
			)
		}
		out, err = out.Append(tabular.Column{Name: name, Values: values})
		if err != nil {
			return nil, err
		}
	}

	logger.Info(
		"calculated mean per condition",
		"survey", lang,
		"conditions", means.Width(),
		"rows", out.Rows(),
	)
	return out, nil
}
