package localization

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const tableJSON = `{
	"english_columns": {
		"rate_competence": "Rate the competence of the speaker",
		"is_l1": "Is Polish your first language?",
		"notes": ""
	},
	"polish_columns": {
		"rate_competence": "Oceń kompetencje mówcy",
		"is_l1": "Czy polski jest twoim pierwszym językiem?"
	},
	"english_answers": {"yes": "Yes", "no": "No"},
	"polish_answers": {"yes": "Tak", "no": "Nie"}
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang_db.json")
	err := os.WriteFile(path, []byte(tableJSON), 0600)
	if err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	label, ok := table.Label(Column, "is_l1", Polish)
	require.True(t, ok)
	require.Equal(t, "Czy polski jest twoim pierwszym językiem?", label)

	label, ok = table.Label(Answer, "yes", English)
	require.True(t, ok)
	require.Equal(t, "Yes", label)

	require.Equal(t, []string{"is_l1", "notes", "rate_competence"}, table.Identifiers(Column))
	require.Equal(t, []string{"no", "yes"}, table.Identifiers(Answer))
}

func TestLookupMissIsDistinctFromEmpty(t *testing.T) {
	table, err := Parse([]byte(tableJSON))
	if err != nil {
		t.Fatal(err)
	}

	label, ok := table.Label(Column, "notes", English)
	require.True(t, ok)
	require.Equal(t, "", label)

	_, ok = table.Label(Column, "notes", Polish)
	require.False(t, ok)

	_, ok = table.Label(Column, "unknown", English)
	require.False(t, ok)

	_, err = table.Require(Answer, "maybe", English)
	require.True(t, errors.Is(err, ErrLabelNotFound))
}

func TestParseMissingPartition(t *testing.T) {
	_, err := Parse([]byte(`{"english_columns": {}, "polish_columns": {}}`))
	require.ErrorContains(t, err, "english_answers")
}
