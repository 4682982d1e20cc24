package casefile

import (
	"fmt"
	"io"

	"github.com/KromDaniel/regbench/internal/corpus"
)

// TestCase is one functionality case.
type TestCase struct {
	Name            string
	Pattern         string
	Text            string
	ShouldCompile   bool
	ShouldMatch     bool
	VerifyFullMatch bool
	ExpectedMatch   string // only meaningful with VerifyFullMatch
	Description     string
}

// NewTestCase returns a TestCase with its documented defaults.
func NewTestCase() TestCase {
	return TestCase{ShouldCompile: true}
}

func (c *TestCase) recordName() string { return c.Name }

func (c *TestCase) set(key, value string) error {
	switch key {
	case "name":
		c.Name = value
	case "pattern":
		c.Pattern = value
	case "text":
		c.Text = value
	case "should_compile":
		c.ShouldCompile = ParseBool(value, true)
	case "should_match":
		c.ShouldMatch = ParseBool(value, false)
	case "verify_full_match":
		c.VerifyFullMatch = ParseBool(value, false)
	case "expected", "expected_match":
		c.ExpectedMatch = value
	case "description":
		c.Description = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// PerfScenario is one performance scenario.
type PerfScenario struct {
	Name           string
	Pattern        string
	TextStrategy   corpus.Strategy
	TextBase       string
	TextSize       int
	Iterations     int
	ShouldMatch    bool
	InsertInterval int
	AnchorPrefix   string
	AnchorSuffix   string
	Description    string
}

// Default values for PerfScenario fields.
const (
	DefaultIterations     = 1
	DefaultInsertInterval = 512
)

// NewPerfScenario returns a PerfScenario with its documented defaults.
func NewPerfScenario() PerfScenario {
	return PerfScenario{
		TextStrategy:   corpus.Repeat,
		Iterations:     DefaultIterations,
		ShouldMatch:    true,
		InsertInterval: DefaultInsertInterval,
	}
}

// CorpusSpec describes the subject text the scenario runs against.
func (s PerfScenario) CorpusSpec() corpus.Spec {
	return corpus.Spec{
		Strategy:       s.TextStrategy,
		Base:           s.TextBase,
		Size:           s.TextSize,
		Pattern:        s.Pattern,
		InsertInterval: s.InsertInterval,
		AnchorPrefix:   s.AnchorPrefix,
		AnchorSuffix:   s.AnchorSuffix,
	}
}

func (s *PerfScenario) recordName() string { return s.Name }

func (s *PerfScenario) set(key, value string) error {
	var err error
	switch key {
	case "name":
		s.Name = value
	case "pattern":
		s.Pattern = value
	case "text_strategy":
		s.TextStrategy, err = corpus.ParseStrategy(value)
	case "text_base":
		s.TextBase = value
	case "text_size":
		s.TextSize, err = parseCount(value)
	case "iterations":
		s.Iterations, err = parseCount(value)
	case "should_match":
		s.ShouldMatch = ParseBool(value, true)
	case "insert_interval":
		s.InsertInterval, err = parseCount(value)
	case "anchor_prefix":
		s.AnchorPrefix = value
	case "anchor_suffix":
		s.AnchorSuffix = value
	case "description":
		s.Description = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

// ParseTestCases reads functionality cases in file order.
func ParseTestCases(r io.Reader) ([]TestCase, error) {
	return parse[TestCase](r, NewTestCase)
}

// ParsePerfScenarios reads performance scenarios in file order.
func ParsePerfScenarios(r io.Reader) ([]PerfScenario, error) {
	return parse[PerfScenario](r, NewPerfScenario)
}
