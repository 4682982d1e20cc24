// Package runner executes functionality cases and performance scenarios
// against a regex engine and records timings and verdicts.
//
// Runs are strictly sequential. Each timed region brackets exactly one
// operation (a compile, or a single match call); corpus generation, logging
// and result callbacks always happen outside of it.
package runner

import (
	"time"

	"go.uber.org/zap"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/engine"
)

// Status is the terminal verdict of a case or scenario.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// Failure notes shared with the other harness implementations.
const (
	NoteCompileErrorPrefix    = "compile_error:"
	NoteMatchErrorPrefix      = "match_error:"
	NoteUnexpectedCompile     = "expected compile failure but succeeded"
	NoteUnexpectedMatch       = "unexpected match"
	NoteMissingMatch          = "missing expected match"
	NoteFullMatchFailed       = "full match verification failed"
	NoteExpectedMatchMissing  = "expected match missing"
	NoteTextSizeNotPositive   = "text_size must be > 0"
	NoteIterationsNotPositive = "iterations must be > 0"
)

// CaseResult is the outcome of one functionality case.
type CaseResult struct {
	Case          casefile.TestCase
	CompileOK     bool
	ActualMatch   bool
	MatchVerified bool
	CompileNs     int64
	MatchNs       int64
	Status        Status
	Notes         string
}

// PerfResult is the outcome of one performance scenario.
type PerfResult struct {
	Scenario      casefile.PerfScenario
	CompileNs     int64
	MatchTotalNs  int64
	MatchAvgNs    int64
	ThroughputMBs float64
	Matched       bool
	Status        Status
	Notes         string
}

// Config holds the collaborators of a Runner.
type Config struct {
	Engine engine.Engine
	Logger *zap.Logger      // nil disables logging
	Clock  func() time.Time // nil uses time.Now

	// OnCase and OnScenario observe each result once it is final.
	OnCase     func(CaseResult)
	OnScenario func(PerfResult)
}

// Runner drives an engine through cases and scenarios.
type Runner struct {
	engine     engine.Engine
	logger     *zap.Logger
	now        func() time.Time
	onCase     func(CaseResult)
	onScenario func(PerfResult)
}

// New creates a runner from config.
func New(config Config) *Runner {
	r := &Runner{
		engine:     config.Engine,
		logger:     config.Logger,
		now:        config.Clock,
		onCase:     config.OnCase,
		onScenario: config.OnScenario,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// elapsed returns nanoseconds since start, never negative.
func (r *Runner) elapsed(start time.Time) int64 {
	ns := r.now().Sub(start).Nanoseconds()
	if ns < 0 {
		return 0
	}
	return ns
}

// Passed reports whether the case passed.
func (r CaseResult) Passed() bool { return r.Status == Pass }

// Passed reports whether the scenario passed.
func (r PerfResult) Passed() bool { return r.Status == Pass }

// CountPassed counts results with status PASS.
func CountPassed[T interface{ Passed() bool }](results []T) int {
	n := 0
	for _, res := range results {
		if res.Passed() {
			n++
		}
	}
	return n
}
