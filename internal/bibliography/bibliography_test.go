package bibliography

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"researchkit/lib/restyutil"
	"researchkit/lib/telemetry"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var discard = telemetry.Discard()

const publisherPage = `<html>
<head><title>Beall's List of Potential Predatory Journals and Publishers</title></head>
<body>
<div class="wp-block-columns">
	<div class="wp-block-column" style="flex-basis: 25%;">
		<ul><li><a href="/sidebar">Sidebar Press</a></li></ul>
	</div>
	<div class="wp-block-column" style="flex-basis: 75%;">
		<p>Publishers</p>
		<ul>
			<li><a href="https://example.org/a">Academic Journals</a> (ajpub.org)</li>
			<li>Unlinked Press</li>
			<li><a>Anchor Without Href</a></li>
			<li> </li>
			<li><a href="https://example.org/s">Science Publishing Group</a></li>
		</ul>
		<ul><li>Second List Publisher</li></ul>
	</div>
</div>
</body>
</html>`

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestParsePublishers(t *testing.T) {
	publishers, err := ParsePublishers(context.Background(), discard, strings.NewReader(publisherPage))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{
		"Academic Journals",
		"Unlinked Press",
		"Anchor Without Href",
		"Science Publishing Group",
	}, publishers)
}

func TestParsePublishersMissingMarkup(t *testing.T) {
	testCases := []struct {
		name string
		page string
	}{
		{
			name: "no article column",
			page: `<html><div class="wp-block-column" style="flex-basis: 25%;"><ul><li>x</li></ul></div></html>`,
		},
		{
			name: "no list",
			page: `<html><div class="wp-block-column" style="flex-basis: 75%;"><p>nothing</p></div></html>`,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParsePublishers(context.Background(), discard, strings.NewReader(test.page))
			require.True(t, errors.Is(err, ErrMissingInput))
		})
	}
}

func TestFetchPublishers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(publisherPage))
	}))
	defer server.Close()

	client, err := restyutil.NewClient(restyutil.ClientOptions{Logger: discard})
	if err != nil {
		t.Fatal(err)
	}

	publishers, err := FetchPublishers(context.Background(), discard, client, server.URL+"/")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, publishers, 4)

	_, err = FetchPublishers(context.Background(), discard, client, server.URL+"/missing")
	require.Error(t, err)
}

func TestLoadBibliography(t *testing.T) {
	path := filepath.Join(t.TempDir(), "your_bibliography.txt")
	writeFile(t, path, "# my sources\n"+
		"Smith, J. (2020). A study. Academic Journals.\n"+
		"abcd\n"+
		"żółw\n"+
		"żółwie\n"+
		"\n"+
		"  Doe, A. (2019). Another study. Unlinked Press.  \n"+
		"exact")

	entries, err := LoadBibliography(discard, path, "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{
		"Smith, J. (2020). A study. Academic Journals.",
		"żółwie",
		"Doe, A. (2019). Another study. Unlinked Press.",
	}, entries)

	_, err = LoadBibliography(discard, filepath.Join(t.TempDir(), "missing.txt"), "utf-8")
	require.True(t, errors.Is(err, ErrMissingInput))
}

func TestFindMatches(t *testing.T) {
	publishers := []string{"Academic Journals", "Press", "Nowhere Publishing"}
	entries := []string{
		"Smith (2020). Academic Journals Press.",
		"Doe (2019). academic journals.",
		"Roe (2018). Unlinked Press.",
	}

	matches := FindMatches(discard, publishers, entries)
	require.Equal(t, []Match{
		{Publisher: "Academic Journals", Entry: "Smith (2020). Academic Journals Press."},
		{Publisher: "Press", Entry: "Smith (2020). Academic Journals Press."},
		{Publisher: "Press", Entry: "Roe (2018). Unlinked Press."},
	}, matches)

	require.Empty(t, FindMatches(discard, nil, entries))
	require.Empty(t, FindMatches(discard, []string{""}, entries))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "report.txt")
	err := WriteReport(path, []Match{
		{Publisher: "Press", Entry: "Roe (2018). Unlinked Press."},
	})
	if err != nil {
		t.Fatal(err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t,
		strings.Repeat("*", 60)+
			"\n--- list of potentailly predatory publishers found in your bibliography ---\n"+
			"publisher 'Press' found in bibliography: Roe (2018). Unlinked Press.\n",
		string(contents),
	)
}

func TestRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(publisherPage))
	}))
	defer server.Close()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Bibliography = filepath.Join(dir, "your_bibliography.txt")
	cfg.Report = filepath.Join(dir, "output", "bibliography_report.txt")
	writeFile(t, cfg.Bibliography, "Lee (2021). Papers. Science Publishing Group.\n")

	matches, err := Run(context.Background(), discard, cfg)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []Match{{
		Publisher: "Science Publishing Group",
		Entry:     "Lee (2021). Papers. Science Publishing Group.",
	}}, matches)

	_, err = os.Stat(cfg.Report)
	require.NoError(t, err)
}
