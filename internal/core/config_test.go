package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigFile(t *testing.T) {
	configFile, err := parseConfigFile(`
[core]
document="main.lean"
language="lean"
strict=true

[editor]
strategy="shared"
`)
	require.NoError(t, err)
	assert.Equal(t, "main.lean", configFile.Core.Document)
	assert.Equal(t, "lean", configFile.Core.Language)
	assert.True(t, configFile.Core.Strict)
	assert.Equal(t, "shared", configFile.Editor.Strategy)

	// Default values
	assert.True(t, configFile.Core.Contiguous)
	assert.Equal(t, "lf", configFile.Core.Newline)
	assert.Equal(t, "markers", configFile.Layout.Detect)
	assert.Equal(t, DefaultMarker, configFile.Layout.Marker)

	// Unknown fields are rejected
	_, err = parseConfigFile(`
[core]
extensions=["md"]
`)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	dirname := t.TempDir()
	config, err := InitConfigFromDirectory(dirname, "notes.lean", DetectFences)
	require.NoError(t, err)
	require.NotNil(t, config)
	require.NoError(t, config.Check())

	assert.Equal(t, dirname, config.RootDirectory)
	assert.Equal(t, "notes.lean", config.ConfigFile.Core.Document)
	assert.Equal(t, "fences", config.ConfigFile.Layout.Detect)
	assert.Equal(t, "-- %%", config.ConfigFile.Layout.Marker)
	assert.Equal(t, StrategySingle, config.Strategy())
	assert.Equal(t, "\n", config.Newline())
	assert.Nil(t, config.LayoutFile)
	assert.Equal(t, filepath.Join(dirname, "notes.lean"), config.DocumentPath())
	assert.FileExists(t, config.DocumentPath())

	// Configuration cannot be overriden
	_, err = InitConfigFromDirectory(dirname, "notes.lean", DetectFences)
	assert.Error(t, err)
}

func TestReadConfigFromDirectory(t *testing.T) {
	dirname := SetUpNotebookFromGoldenDirNamed(t, "TestLoadNotebookWithLayout")

	// Search in parent directories
	subdir := filepath.Join(dirname, "src", "lib")
	require.NoError(t, os.MkdirAll(subdir, 0755))
	config, err := ReadConfigFromDirectory(subdir)
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, dirname, config.RootDirectory)
	assert.Equal(t, StrategyShared, config.Strategy())
	assert.Equal(t, "\r\n", config.Newline())
	require.NotNil(t, config.LayoutFile)
	assert.Len(t, config.LayoutFile.Cells, 2)

	// Outside a notebook
	config, err = ReadConfigFromDirectory(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestCurrentConfig(t *testing.T) {
	dirname := SetUpNotebookFromGoldenDirNamed(t, "TestLoadNotebook")
	config := CurrentConfig()
	assert.Equal(t, dirname, config.RootDirectory)
	assert.Equal(t, "lean", config.ConfigFile.Core.Language)
	// Singleton
	assert.Same(t, config, CurrentConfig())
}

func TestConfigCheck(t *testing.T) {
	var tests = []struct {
		name   string
		config ConfigFile
		valid  bool
	}{
		{
			name: "Valid",
			config: ConfigFile{
				Core:   ConfigCore{Document: "main.lean", Newline: "crlf"},
				Editor: ConfigEditor{Strategy: "shared"},
				Layout: ConfigLayout{Detect: "markers", Marker: "# %%"},
			},
			valid: true,
		},
		{
			name:   "Missing document",
			config: ConfigFile{Core: ConfigCore{Newline: "lf"}},
		},
		{
			name:   "Document outside notebook",
			config: ConfigFile{Core: ConfigCore{Document: "../main.lean", Newline: "lf"}},
		},
		{
			name:   "Unknown newline",
			config: ConfigFile{Core: ConfigCore{Document: "main.lean", Newline: "cr"}},
		},
		{
			name: "Unknown strategy",
			config: ConfigFile{
				Core:   ConfigCore{Document: "main.lean", Newline: "lf"},
				Editor: ConfigEditor{Strategy: "multiple"},
			},
		},
		{
			name: "Missing marker",
			config: ConfigFile{
				Core:   ConfigCore{Document: "main.lean", Newline: "lf"},
				Layout: ConfigLayout{Detect: "markers"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{ConfigFile: tt.config}
			if tt.valid {
				assert.NoError(t, config.Check())
			} else {
				assert.Error(t, config.Check())
			}
		})
	}
}
