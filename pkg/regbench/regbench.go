// Package regbench runs regex functionality cases and performance scenarios
// from case files and writes the shared result tables.
package regbench

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/engine"
	"github.com/KromDaniel/regbench/internal/report"
	"github.com/KromDaniel/regbench/internal/runner"
	"github.com/KromDaniel/regbench/internal/settings"
)

// Mode selects functionality or performance runs.
type Mode = settings.Mode

const (
	Functionality = settings.Functionality
	Performance   = settings.Performance
)

// CaseResult is the outcome of one functionality case.
type CaseResult = runner.CaseResult

// PerfResult is the outcome of one performance scenario.
type PerfResult = runner.PerfResult

var (
	// ErrNoCases is returned when a functionality case file holds no records.
	ErrNoCases = errors.New("no test cases found")
	// ErrNoScenarios is returned when a performance case file holds no records.
	ErrNoScenarios = errors.New("no performance scenarios found")
)

// Options configures a run.
type Options struct {
	// Mode is Functionality or Performance
	Mode Mode

	// CasesPath is the case file to read
	CasesPath string

	// OutputPath is where the result table is written
	OutputPath string

	// Engine names the regex engine (see Engines); empty means the default engine
	Engine string

	// Logger receives run-level events; nil disables logging
	Logger *zap.Logger

	// OnCase and OnScenario observe each result as soon as it is final
	OnCase     func(CaseResult)
	OnScenario func(PerfResult)
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if _, err := settings.ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.CasesPath == "" {
		return fmt.Errorf("cases path cannot be empty")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	return nil
}

// Report summarises a finished run. Exactly one of Cases and Scenarios is set.
type Report struct {
	Mode       Mode
	Engine     string
	OutputPath string
	Total      int
	Passed     int
	// MeanThroughput averages throughput over scenarios that measured any.
	MeanThroughput float64

	Cases     []CaseResult
	Scenarios []PerfResult
}

// Failed is the number of records with status FAIL.
func (r *Report) Failed() int {
	return r.Total - r.Passed
}

// Engines lists the available engine names.
func Engines() []string {
	return engine.Names()
}

// Run parses the case file, executes every record in order and writes the
// result table. Configuration problems (unknown engine, unreadable or
// malformed case file, empty case file) abort before any record executes.
func Run(opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	eng, err := engine.Lookup(opts.Engine)
	if err != nil {
		return nil, err
	}

	content, err := os.Open(opts.CasesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.CasesPath, err)
	}
	defer content.Close()

	r := runner.New(runner.Config{
		Engine:     eng,
		Logger:     logger,
		OnCase:     opts.OnCase,
		OnScenario: opts.OnScenario,
	})
	rep := &Report{Mode: opts.Mode, Engine: eng.Name(), OutputPath: opts.OutputPath}

	var write func(io.Writer) error
	switch opts.Mode {
	case Functionality:
		cases, err := casefile.ParseTestCases(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.CasesPath, err)
		}
		if len(cases) == 0 {
			return nil, ErrNoCases
		}
		logger.Info("parsed test cases", zap.String("path", opts.CasesPath), zap.Int("count", len(cases)), zap.String("engine", eng.Name()))

		rep.Cases = r.RunCases(cases)
		rep.Total = len(rep.Cases)
		rep.Passed = runner.CountPassed(rep.Cases)
		write = func(w io.Writer) error { return report.WriteCases(w, rep.Cases) }

	case Performance:
		scenarios, err := casefile.ParsePerfScenarios(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.CasesPath, err)
		}
		if len(scenarios) == 0 {
			return nil, ErrNoScenarios
		}
		logger.Info("parsed performance scenarios", zap.String("path", opts.CasesPath), zap.Int("count", len(scenarios)), zap.String("engine", eng.Name()))

		rep.Scenarios = r.RunScenarios(scenarios)
		rep.Total = len(rep.Scenarios)
		rep.Passed = runner.CountPassed(rep.Scenarios)
		rep.MeanThroughput = meanThroughput(rep.Scenarios)
		write = func(w io.Writer) error { return report.WritePerf(w, rep.Scenarios) }
	}

	if err := report.WriteFile(opts.OutputPath, write); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	logger.Info("wrote results", zap.String("path", opts.OutputPath), zap.Int("total", rep.Total), zap.Int("passed", rep.Passed))

	return rep, nil
}

func meanThroughput(results []PerfResult) float64 {
	var sum float64
	var n int
	for _, res := range results {
		if res.ThroughputMBs > 0 {
			sum += res.ThroughputMBs
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
