package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julien-sobczak/the-notebook/pkg/resync"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

// How many parent directories to traverse before considering a directory as not a notebook
const maxDepth = 10

// Default .nb/config content
const DefaultConfig = `
[core]
document=%q
contiguous=true
strict=false

[editor]
strategy="single"

[layout]
detect=%q
marker="-- %%%%"
`

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Core   ConfigCore
	Editor ConfigEditor
	Layout ConfigLayout
}
type ConfigCore struct {
	// Path of the document relative to the notebook root directory
	Document string
	// Language of code cells (ex: lean)
	Language string
	// Newline used when writing the document back: lf or crlf
	Newline string
	// Contiguous requires cells to cover the whole document without gaps
	Contiguous bool
	// Strict makes invariant violations fatal
	Strict bool
}
type ConfigEditor struct {
	Strategy string // single or shared
}
type ConfigLayout struct {
	Detect string // markers, fences or single
	Marker string
}

// defaultConfigFile returns the values used for settings missing in .nb/config.
func defaultConfigFile() ConfigFile {
	return ConfigFile{
		Core: ConfigCore{
			Newline:    "lf",
			Contiguous: true,
		},
		Editor: ConfigEditor{
			Strategy: string(StrategySingle),
		},
		Layout: ConfigLayout{
			Detect: string(DetectMarkers),
			Marker: DefaultMarker,
		},
	}
}

/* Main config */

type Config struct {
	// Absolute top directory containing the .nb sub-directory
	RootDirectory string

	// .nb/config content
	ConfigFile ConfigFile

	// .nb/layout content. Nil when the layout has never been saved.
	LayoutFile *LayoutFile

	// Toggle this flag to skip some side-effects
	DryRun bool
}

func CurrentConfig() *Config {
	configOnce.Do(func() {
		var err error
		configSingleton, err = ReadConfigFromDirectory(currentHome())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to read current configuration: %v\n", err)
			os.Exit(1)
		}
		if configSingleton == nil {
			fmt.Fprintln(os.Stderr, "fatal: not a notebook (or any of the parent directories): .nb")
			os.Exit(1)
		}
	})
	return configSingleton
}

// DocumentPath returns the absolute path of the document.
func (c *Config) DocumentPath() string {
	return filepath.Join(c.RootDirectory, c.ConfigFile.Core.Document)
}

// LayoutPath returns the absolute path of the layout file.
func (c *Config) LayoutPath() string {
	return filepath.Join(c.RootDirectory, ".nb", "layout")
}

// Strategy returns the editor strategy.
func (c *Config) Strategy() Strategy {
	strategy, err := ParseStrategy(c.ConfigFile.Editor.Strategy)
	if err != nil {
		// Must not happen after Check()
		return StrategySingle
	}
	return strategy
}

// Newline returns the line terminator to use when writing the document.
func (c *Config) Newline() string {
	if strings.EqualFold(c.ConfigFile.Core.Newline, "crlf") {
		return "\r\n"
	}
	return "\n"
}

// NotebookOptions returns the notebook settings defined in the configuration.
func (c *Config) NotebookOptions() []Option {
	options := []Option{
		WithStrictInvariants(c.ConfigFile.Core.Strict),
		WithContiguousCells(c.ConfigFile.Core.Contiguous),
		WithName(c.ConfigFile.Core.Document),
	}
	if c.LayoutFile != nil {
		options = append(options, WithRetiredIDs(c.LayoutFile.Retired...))
	}
	return options
}

func currentHome() string {
	// Supports overriding the root directory mainly for testing purposes.
	// For example, when developing the CLI, it's convenient to try command
	// without installing the binary. Ex:
	//
	//   $ env NB_HOME=./examples go run ./cmd/nb ls
	if path, ok := os.LookupEnv("NB_HOME"); ok {
		abspath, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to evaluate $NB_HOME")
			os.Exit(1)
		}
		if _, err := os.Stat(abspath); os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Path in $NB_HOME undefined")
			os.Exit(1)
		}
		return abspath
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to determine current directory: %v\n", err)
		os.Exit(1)
	}
	return cwd
}

// ReadConfigFromDirectory loads the configuration by searching for a .nb directory in the given directory
// or any parent directories. Nil is returned when no directory is found.
func ReadConfigFromDirectory(path string) (*Config, error) {
	rootPath := path
	i := 0 // Safeguard to not go up too far
	for {
		i++
		if i > maxDepth {
			return nil, nil
		}
		nbPath := filepath.Join(rootPath, ".nb")
		_, err := os.Stat(nbPath)
		if os.IsNotExist(err) {
			if len(strings.Split(rootPath, string(os.PathSeparator))) <= 2 {
				// Root directory detected
				return nil, nil
			}
			rootPath = filepath.Clean(filepath.Join(rootPath, ".."))
		} else if err != nil {
			return nil, fmt.Errorf("error while searching for configuration directory: %v", err)
		} else {
			break
		}
	}

	// Check for .nb/config
	nbConfigPath := filepath.Join(rootPath, ".nb", "config")
	content, err := os.ReadFile(nbConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .nb/config file: %v", err)
	}
	configFile, err := parseConfigFile(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .nb/config file: %v", err)
	}

	// Check for .nb/layout
	nbLayoutPath := filepath.Join(rootPath, ".nb", "layout")
	_, err = os.Stat(nbLayoutPath)
	var layoutFile *LayoutFile
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .nb/layout file: %v", err)
	} else if err == nil {
		content, err := os.ReadFile(nbLayoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read .nb/layout file: %v", err)
		}
		layoutFile, err = ParseLayoutFile(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse .nb/layout file: %v", err)
		}
	}

	return &Config{
		RootDirectory: rootPath,
		ConfigFile:    *configFile,
		LayoutFile:    layoutFile,
	}, nil
}

func parseConfigFile(content string) (*ConfigFile, error) {
	r := strings.NewReader(content)
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	result := defaultConfigFile()
	err := d.Decode(&result)
	return &result, err
}

// InitConfigFromDirectory creates the .nb configuration directory for the given document.
func InitConfigFromDirectory(path, document string, detection Detection) (*Config, error) {
	currentConfig, err := ReadConfigFromDirectory(path)
	if err != nil {
		return nil, err
	}
	if currentConfig != nil {
		// Do not override current configuration
		return nil, fmt.Errorf("current configuration detected")
	}
	if document == "" {
		return nil, fmt.Errorf("missing document")
	}
	if detection == "" {
		detection = DetectMarkers
	}

	// Create .nb directory
	nbPath := filepath.Join(path, ".nb")
	err = os.Mkdir(nbPath, 0755)
	if err != nil {
		return nil, err
	}

	// Init .nb/config file
	nbConfigPath := filepath.Join(nbPath, "config")
	err = os.WriteFile(nbConfigPath, []byte(fmt.Sprintf(DefaultConfig, document, detection)), 0644)
	if err != nil {
		return nil, err
	}

	// Init the document when missing
	documentPath := filepath.Join(path, document)
	_, err = os.Stat(documentPath)
	if os.IsNotExist(err) { // Do not override existing file!
		err = os.WriteFile(documentPath, nil, 0644)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// Reread configuration
	return ReadConfigFromDirectory(path)
}

func (c *Config) Check() error {
	core := c.ConfigFile.Core
	if core.Document == "" {
		return fmt.Errorf("missing document in section [core]")
	}
	if filepath.IsAbs(core.Document) || strings.HasPrefix(filepath.Clean(core.Document), "..") {
		return fmt.Errorf("document %q must be relative to the notebook directory", core.Document)
	}
	if !slices.Contains([]string{"lf", "crlf"}, strings.ToLower(core.Newline)) {
		return fmt.Errorf("unknown newline %q", core.Newline)
	}

	if _, err := ParseStrategy(c.ConfigFile.Editor.Strategy); err != nil {
		return err
	}

	detection, err := ParseDetection(c.ConfigFile.Layout.Detect)
	if err != nil {
		return err
	}
	if detection == DetectMarkers && strings.TrimSpace(c.ConfigFile.Layout.Marker) == "" {
		return fmt.Errorf("missing marker for layout detection %q", detection)
	}

	if c.LayoutFile != nil {
		if _, err := c.LayoutFile.ToCells(); err != nil {
			return fmt.Errorf("invalid .nb/layout file: %w", err)
		}
	}

	return nil
}
