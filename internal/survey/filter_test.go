package survey

import (
	"context"
	"errors"
	"researchkit/lib/localization"
	"testing"

	"github.com/stretchr/testify/require"
)

var testChecks = []ControlCheck{
	{Column: "Is Polish your L1?", Answer: "yes"},
	{Column: "Is English your L2?", Answer: "yes"},
	{Column: "How often", Answer: "daily"},
}

func TestResolveControls(t *testing.T) {
	checks, err := ResolveControls(testTable(), DefaultConfig().Controls)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testChecks, checks)

	_, err = ResolveControls(testTable(), []ControlSpec{{Column: "is_l1", Answer: "maybe"}})
	require.True(t, errors.Is(err, localization.ErrLabelNotFound))
}

func TestWrongAnswers(t *testing.T) {
	ds := mustDataset(t,
		[]string{"Is Polish your L1?", "Is English your L2?", "How often"},
		[]string{"yes", "yes", "daily"},
		[]string{"no", "yes", "daily"},
		[]string{"yes", "yes", "weekly"},
		[]string{"no", "no", ""},
		[]string{"yes", "", "daily"},
	)
	rows, err := WrongAnswers(discard, ds, testChecks)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []int{1, 2, 3, 4}, rows)

	_, err = WrongAnswers(discard, ds, []ControlCheck{{Column: "missing", Answer: "yes"}})
	require.True(t, errors.Is(err, ErrMissingColumn))
}

func TestClickers(t *testing.T) {
	testCases := []struct {
		name     string
		ratings  []string
		maxRatio int
		clicker  bool
	}{
		{name: "always the same", ratings: []string{"3", "3", "3", "3", "3"}, maxRatio: 80, clicker: true},
		{name: "exactly at the cutoff", ratings: []string{"3", "3", "3", "3", "1"}, maxRatio: 80, clicker: false},
		{name: "varied", ratings: []string{"1", "2", "3", "4", "5"}, maxRatio: 80, clicker: false},
		{name: "lower cutoff", ratings: []string{"3", "3", "3", "4", "1"}, maxRatio: 50, clicker: true},
		// 4 out of 6 is 66.67%, rounded to 67
		{name: "rounded ratio", ratings: []string{"2", "2", "2", "2", "1", "5"}, maxRatio: 66, clicker: true},
		// 5 out of 8 is 62.5%, rounded half to even to 62
		{name: "half to even", ratings: []string{"2", "2", "2", "2", "2", "1", "3", "4"}, maxRatio: 62, clicker: false},
		{name: "empty cells are no answer", ratings: []string{"", "", "", "", "4"}, maxRatio: 80, clicker: false},
		{name: "nothing answered", ratings: []string{"", "", ""}, maxRatio: 0, clicker: false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			header := make([]string, len(test.ratings))
			for i := range header {
				header[i] = "Rate competence"
			}
			header = append(header, "Gender")
			ds := mustDataset(t, header, append(append([]string{}, test.ratings...), "female"))

			rows := Clickers(discard, ds, "Rate competence", test.maxRatio)
			if test.clicker {
				require.Equal(t, []int{0}, rows)
			} else {
				require.Empty(t, rows)
			}
		})
	}
}

func TestMostCommonTieBreak(t *testing.T) {
	answer, count := mostCommon([]string{"4", "2", "", "2", "4"})
	require.Equal(t, "4", answer)
	require.Equal(t, 2, count)
}

func TestFilter(t *testing.T) {
	header := append([]string{"Language", "cond_A"}, demographicHeader...)
	means := mustDataset(t, header,
		append([]string{"en", "2.0"}, demographicRecord...),
		append([]string{"en", "3.0"}, "no", "yes", "daily", "6", "2000", "female", "big", "1"),
		append([]string{"en", "4.0"}, demographicRecord...),
		append([]string{"en", "5.0"}, demographicRecord...),
	)
	original := mustDataset(t,
		[]string{"Rate competence 1", "Rate competence 2", "Rate competence 3"},
		// wrong answer and a clicker at the same time
		[]string{"1", "2", "3"},
		[]string{"3", "3", "3"},
		[]string{"5", "5", "5"},
		[]string{"1", "4", "5"},
	)

	out, removed, err := Filter(context.Background(), discard, means, original, FilterOptions{
		Language:    localization.English,
		Checks:      testChecks,
		RatingLabel: "Rate competence",
		MaxRatio:    80,
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []int{1, 2}, removed)
	require.Equal(t, 2, out.Rows())
	require.Equal(t, "2.0", out.Cell(0, 1))
	require.Equal(t, "5.0", out.Cell(1, 1))

	_, _, err = Filter(context.Background(), discard, means, original.DropRows([]int{0}), FilterOptions{})
	require.Error(t, err)
}

func TestFilterRemovesWrongL1(t *testing.T) {
	header := append([]string{"Language", "cond_A"}, demographicHeader...)
	means := mustDataset(t, header,
		append([]string{"pl", "2.0"}, "no", "yes", "daily", "6", "2000", "female", "big", "1"),
	)
	original := mustDataset(t, []string{"Rate competence 1", "Rate competence 2"}, []string{"1", "2"})

	out, removed, err := Filter(context.Background(), discard, means, original, FilterOptions{
		Language:    localization.Polish,
		Checks:      testChecks,
		RatingLabel: "Rate competence",
		MaxRatio:    80,
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []int{0}, removed)
	require.Equal(t, 0, out.Rows())
}
