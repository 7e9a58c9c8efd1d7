package survey

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadColumnLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column_names.txt")
	writeFile(t, path, "# comment = ignored\n"+
		"cond_A = first question\n"+
		"\n"+
		"ab\n"+
		"żó\n"+
		"cond_B=second question\n"+
		"  no equals sign here  \n"+
		"a=b=c\n")

	labels, err := LoadColumnLabels(discard, path, "")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"cond_A", "cond_B", "no equals sign here", "a=b=c"}, labels)

	_, err = LoadColumnLabels(discard, filepath.Join(t.TempDir(), "missing.txt"), "")
	require.Error(t, err)
}
