package survey

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("researchkit.internal.survey")
var meter = otel.Meter("researchkit.internal.survey")

var removedCounter, _ = meter.Int64Counter(
	"survey_respondents_removed",
	metric.WithDescription("respondents removed by the quality filter"),
)

// ControlCheck requires every respondent to have answered Answer to the
// question in Column, both are English labels.
type ControlCheck struct {
	Column string
	Answer string
}

// ResolveControls turns identifier based control specs into label based
// checks.
func ResolveControls(table *localization.Table, specs []ControlSpec) ([]ControlCheck, error) {
	checks := make([]ControlCheck, len(specs))
	for i, s := range specs {
		column, err := table.Require(localization.Column, s.Column, localization.English)
		if err != nil {
			return nil, err
		}
		answer, err := table.Require(localization.Answer, s.Answer, localization.English)
		if err != nil {
			return nil, err
		}
		checks[i] = ControlCheck{Column: column, Answer: answer}
	}
	return checks, nil
}

// WrongAnswers returns the sorted rows whose answer to any control question
// differs from the required one. An empty answer is a wrong answer.
func WrongAnswers(logger *slog.Logger, ds *tabular.Dataset, checks []ControlCheck) ([]int, error) {
	flagged := map[int]struct{}{}
	for _, check := range checks {
		col := ds.Index(check.Column)
		if col < 0 {
			return nil, fmt.Errorf("%w: control column %q", ErrMissingColumn, check.Column)
		}

		var wrong []int
		for r := 0; r < ds.Rows(); r++ {
			if ds.Cell(r, col) != check.Answer {
				wrong = append(wrong, r)
				flagged[r] = struct{}{}
			}
		}
		if len(wrong) > 0 {
			logger.Warn(
				"respondents gave the wrong answer to a control question",
				"column", check.Column,
				"expected", check.Answer,
				"rows", wrong,
			)
		}
	}

	rows := sortedRows(flagged)
	logger.Info(
		"checked control answers",
		"wrong", len(rows),
		"respondents", ds.Rows(),
		"ratio", percentOf(len(rows), ds.Rows()),
	)
	return rows, nil
}

// Clickers returns the rows where the most frequent answer of the rating
// block makes up more than maxRatio percent of all rating columns. Empty
// cells are never counted as an answer but still count towards the total.
func Clickers(logger *slog.Logger, ds *tabular.Dataset, ratingLabel string, maxRatio int) []int {
	block := ratingBlock(ds, ratingLabel)

	var rows []int
	if block.Width() == 0 {
		logger.Warn("survey has no rating columns, skipping clicker detection", "rating_label", ratingLabel)
		return rows
	}

	for r := 0; r < ds.Rows(); r++ {
		answer, count := mostCommon(block.Record(r))
		if count == 0 {
			continue
		}
		ratio := int(math.RoundToEven(float64(count) / float64(block.Width()) * 100))
		if ratio > maxRatio {
			logger.Warn(
				"respondent kept choosing the same answer",
				"row", r,
				"answer", answer,
				"ratio", ratio,
				"cutoff", maxRatio,
			)
			rows = append(rows, r)
		}
	}

	logger.Info(
		"checked clickers",
		"cutoff", maxRatio,
		"clickers", len(rows),
		"respondents", ds.Rows(),
		"ratio", percentOf(len(rows), ds.Rows()),
	)
	return rows
}

// mostCommon returns the most frequent non-empty value of row `r` over the
// given columns, ties go to the value seen first.
func mostCommon(answers []string) (string, int) {
	counts := map[string]int{}
	var order []string
	for _, v := range answers {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	var best string
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, bestCount
}

// FilterOptions configures the quality filter of one survey.
type FilterOptions struct {
	Language    localization.Language
	Checks      []ControlCheck
	RatingLabel string
	MaxRatio    int
}

// Filter removes low quality respondents from the aggregated dataset
// `means`. Wrong answers are looked up in `means`, clickers in the
// translated source dataset `original`, both share the same row numbering so
// the two sets are merged and the rows are dropped at once.
func Filter(
	ctx context.Context,
	logger *slog.Logger,
	means, original *tabular.Dataset,
	opts FilterOptions,
) (*tabular.Dataset, []int, error) {
	ctx, span := tracer.Start(ctx, "survey.Filter")
	defer span.End()

	if means.Rows() != original.Rows() {
		return nil, nil, fmt.Errorf(
			"%s survey: aggregated dataset has %d rows, source has %d",
			opts.Language, means.Rows(), original.Rows(),
		)
	}

	logger = logger.With("survey", opts.Language)

	wrong, err := WrongAnswers(logger, means, opts.Checks)
	if err != nil {
		return nil, nil, err
	}
	clickers := Clickers(logger, original, opts.RatingLabel, opts.MaxRatio)

	union := map[int]struct{}{}
	for _, r := range wrong {
		union[r] = struct{}{}
	}
	for _, r := range clickers {
		union[r] = struct{}{}
	}
	removed := sortedRows(union)

	out := means.DropRows(removed)
	if len(removed) == 0 {
		logger.Info("did not drop any respondents", "rows", means.Rows())
	} else {
		logger.Info("dropped respondents", "removed", len(removed), "before", means.Rows(), "after", out.Rows())
	}
	removedCounter.Add(ctx, int64(len(removed)), metric.WithAttributes(
		attribute.String("language", string(opts.Language)),
	))
	return out, removed, nil
}

func sortedRows(set map[int]struct{}) []int {
	rows := make([]int, 0, len(set))
	for r := range set {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*10000) / 100
}
