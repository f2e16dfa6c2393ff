package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/julien-sobczak/the-notebook/internal/testutil"
	"github.com/julien-sobczak/the-notebook/pkg/clock"
	"github.com/stretchr/testify/require"
)

// Reset forces singletons to be recreated. Useful between unit tests.
func Reset() {
	configOnce.Reset()
	loggerOnce.Reset()
	repositoryOnce.Reset()
	notebookOnce.Reset()
}

/* Fixtures */

// SetUpNotebookFromGoldenDir populates a temp directory containing a valid .nb notebook.
func SetUpNotebookFromGoldenDir(t *testing.T) string {
	return SetUpNotebookFromGoldenDirNamed(t, t.Name())
}

// SetUpNotebookFromGoldenDirNamed populates a temp directory based on the given golden dir name.
func SetUpNotebookFromGoldenDirNamed(t *testing.T, testname string) string {
	dirname := testutil.SetUpFromGoldenDirNamed(t, testname)
	configureDir(t, dirname, "main.lean")
	return dirname
}

// SetUpNotebookFromFileContent populates a temp directory containing a single document.
func SetUpNotebookFromFileContent(t *testing.T, name, content string) string {
	filename := testutil.SetUpFromFileContent(t, name, content)
	dirname := filepath.Dir(filename)
	configureDir(t, dirname, name)
	return dirname
}

func configureDir(t *testing.T, dirname, document string) {
	nbDir := filepath.Join(dirname, ".nb")
	if _, err := os.Stat(nbDir); os.IsNotExist(err) {
		// Create a default configuration if not exists for CurrentConfig() to work
		if err := os.Mkdir(nbDir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(nbDir, "config"), []byte(fmt.Sprintf(`
[core]
document=%q
strict=true
`, document)), os.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
	// Force the application to consider the temporary directory as the home
	os.Setenv("NB_HOME", dirname)
	t.Cleanup(func() {
		os.Unsetenv("NB_HOME")
		Reset()
	})

	// Force debug level in tests to diagnose more easily
	CurrentLogger().SetVerboseLevel(VerboseDebug)
	CurrentLogger().Debugf("✨ Set up directory %q", nbDir)
}

// NewTestNotebook creates a notebook failing abruptly on invariant violations.
func NewTestNotebook(t *testing.T, content string, cells ...Cell) *Notebook {
	nb, err := NewNotebook(content, cells, WithStrictInvariants(true))
	require.NoError(t, err, "invalid layout %s", spew.Sdump(cells))
	return nb
}

// CaptureLogs redirects the current logger to a buffer until the end of the test.
func CaptureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	CurrentLogger().SetOutput(&buf)
	t.Cleanup(func() {
		CurrentLogger().SetOutput(os.Stderr)
	})
	return &buf
}

/* Reproducible Tests */

// FreezeAt wraps the clock API to register the cleanup function at the end of the test.
func FreezeAt(t *testing.T, point time.Time) time.Time {
	now := clock.FreezeAt(point)
	t.Cleanup(clock.Unfreeze)
	return now.Now()
}

/* Text Helpers */

// ReplaceLine replaces a line inside a file.
func ReplaceLine(t *testing.T, path string, lineNumber int, oldLine string, newLine string) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.LessOrEqual(t, lineNumber, len(lines))
	require.Equal(t, oldLine, lines[lineNumber-1])
	lines[lineNumber-1] = newLine
	content := strings.Join(lines, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// AppendLines append multiple lines in a file.
func AppendLines(t *testing.T, path string, text string) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	newLines := strings.Split(text, "\n")
	lines = append(lines, newLines...)
	content := strings.Join(lines, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
