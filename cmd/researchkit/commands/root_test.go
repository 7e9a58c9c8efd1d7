package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"researchkit/internal/grades"
	"researchkit/lib/configutil"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researchkit.json5")
	err := os.WriteFile(path, []byte(`{
		log: "./logs/run.log",
		survey: {
			max_clicker_ratio: 70,
			enabled: {get_age: false},
		},
		bibliography: {url: "http://localhost:8080/"},
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := configutil.ReadWithDefaults(path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defaults := DefaultConfig()

	require.Equal(t, "./logs/run.log", cfg.LogPath)
	require.Equal(t, 70, cfg.Survey.MaxClickerRatio)
	require.False(t, cfg.Survey.Enabled.Age)
	require.True(t, cfg.Survey.Enabled.Gender)
	require.Equal(t, defaults.Survey.InputEN, cfg.Survey.InputEN)
	require.Equal(t, defaults.Survey.Controls, cfg.Survey.Controls)
	require.Equal(t, "http://localhost:8080/", cfg.Bibliography.URL)
	require.Equal(t, defaults.Bibliography.Bibliography, cfg.Bibliography.Bibliography)
	require.Equal(t, defaults.Grades, cfg.Grades)
}

func TestExecuteClosesLogOnFailure(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.log")
	path := filepath.Join(dir, "researchkit.json5")
	err := os.WriteFile(path, []byte(fmt.Sprintf(`{
		log: %q,
		grades: {input: %q, output: %q},
	}`, logPath, filepath.Join(dir, "missing.html"), filepath.Join(dir, "output.txt"))), 0600)
	if err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"--config", path, "grades"})
	defer rootCmd.SetArgs(nil)

	err = ExecuteContext(context.Background())
	require.True(t, errors.Is(err, grades.ErrMissingInput), err)
	require.Nil(t, closeLog)

	contents, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, string(contents), "command failed")
	require.Contains(t, string(contents), "grade extraction failed")

	_, err = os.Stat(filepath.Join(dir, "output.txt"))
	require.True(t, os.IsNotExist(err))
}
