package survey

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteStats(t *testing.T) {
	sections := []Section{
		{Name: "participant size", Entries: []Entry{
			{Key: "english group", Value: "2"},
			{Key: "polish group", Value: "1"},
		}},
		{Name: "en: gender", Entries: []Entry{{Key: "female", Value: "100.0%"}}},
		{Name: "empty"},
	}

	path := filepath.Join(t.TempDir(), "output", "stats.txt")
	err := WriteStats(path, StatsHeader, sections)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t,
		"[all data below has been calculated after the participants were removed]\n"+
			"\n[participant size]\n"+
			"\tenglish group = 2\n"+
			"\tpolish group = 1\n"+
			"\n[en: gender]\n"+
			"\tfemale = 100.0%\n"+
			"\n[empty]\n",
		readFile(t, path),
	)

	require.Equal(t, "header\n", FormatStats("header", nil))
}
