// Package settings loads the optional .regbench.yaml file and resolves the
// paths and engine a run uses.
//
// Priority order (highest first): command-line flags, the settings file,
// built-in defaults.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/regbench/internal/engine"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".regbench.yaml"

// Built-in case and result locations.
const (
	DefaultFunctionalityCases  = "benchmark/data/functionality_cases.txt"
	DefaultFunctionalityOutput = "benchmark/results/functional_go.tsv"
	DefaultPerformanceCases    = "benchmark/data/performance_scenarios.txt"
	DefaultPerformanceOutput   = "benchmark/results/performance_go.tsv"

	DefaultEngine   = engine.DefaultEngine
	DefaultLogLevel = "warn"
)

// Mode selects which runner a run uses.
type Mode string

const (
	Functionality Mode = "functionality"
	Performance   Mode = "performance"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Functionality, Performance:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unsupported mode: %s", s)
}

// Paths is a cases/output location pair.
type Paths struct {
	Cases  string `yaml:"cases"`
	Output string `yaml:"output"`
}

// Settings is the content of a settings file.
type Settings struct {
	Engine        string `yaml:"engine"`
	LogLevel      string `yaml:"log_level"`
	Functionality Paths  `yaml:"functionality"`
	Performance   Paths  `yaml:"performance"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `yaml:"-"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Engine:   DefaultEngine,
		LogLevel: DefaultLogLevel,
		Functionality: Paths{
			Cases:  DefaultFunctionalityCases,
			Output: DefaultFunctionalityOutput,
		},
		Performance: Paths{
			Cases:  DefaultPerformanceCases,
			Output: DefaultPerformanceOutput,
		},
	}
}

// PathsFor returns the locations configured for mode.
func (s Settings) PathsFor(mode Mode) Paths {
	if mode == Performance {
		return s.Performance
	}
	return s.Functionality
}

// Load reads settings from path. An empty path falls back to DefaultFile and
// silently uses the defaults when that file does not exist; an explicit path
// must exist. Unknown keys are rejected.
func Load(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// Parse decodes settings YAML and fills unset fields from Defaults.
func Parse(r io.Reader) (Settings, error) {
	var file Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}

	s := Defaults()
	overlay(&s.Engine, file.Engine)
	overlay(&s.LogLevel, file.LogLevel)
	overlay(&s.Functionality.Cases, file.Functionality.Cases)
	overlay(&s.Functionality.Output, file.Functionality.Output)
	overlay(&s.Performance.Cases, file.Performance.Cases)
	overlay(&s.Performance.Output, file.Performance.Output)
	return s, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
