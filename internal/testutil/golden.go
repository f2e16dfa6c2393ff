package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
)

// SetUpFromGoldenFileNamed creates a temp file based on the given golden file name.
// The file must exist in directory testdata/.
func SetUpFromGoldenFileNamed(t *testing.T, filename string) string {
	dir := t.TempDir()

	in, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatal(err)
	}

	fileOut := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(fileOut, in, 0644); err != nil {
		t.Fatal(err)
	}
	return fileOut
}

// SetUpFromFileContent creates a temp file based on the given file content.
func SetUpFromFileContent(t *testing.T, filename string, content string) string {
	dir := t.TempDir()

	fileOut := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(fileOut), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fileOut, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fileOut
}

// SetUpFromGoldenDir populates a temp directory based on the test name.
func SetUpFromGoldenDir(t *testing.T) string {
	return SetUpFromGoldenDirNamed(t, t.Name())
}

// SetUpFromGoldenDirNamed populates a temp directory based on the given golden dir name.
// The golden directory is copied (not linked) as notebooks rewrite their files.
func SetUpFromGoldenDirNamed(t *testing.T, testname string) string {
	dirIn := filepath.Join("testdata", testname)
	dirOut := filepath.Join(t.TempDir(), filepath.Base(testname))

	if err := copy.Copy(dirIn, dirOut); err != nil {
		t.Fatal(err)
	}
	return dirOut
}

// GoldenFileNamed reads the content of the given golden file.
func GoldenFileNamed(t *testing.T, filename string) []byte {
	path := filepath.Join("testdata", filename)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading golden file %s: %v", path, err)
	}
	return b
}
