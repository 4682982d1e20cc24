package runner

import (
	"go.uber.org/zap"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/corpus"
)

const (
	bytesPerMB     = 1 << 20
	nanosPerSecond = 1e9
)

// RunScenarios executes scenarios in order and returns one result per scenario.
func (r *Runner) RunScenarios(scenarios []casefile.PerfScenario) []PerfResult {
	results := make([]PerfResult, 0, len(scenarios))
	for _, s := range scenarios {
		res := r.runScenario(s)
		r.logger.Debug("scenario finished",
			zap.String("scenario", s.Name),
			zap.String("status", string(res.Status)),
			zap.Int64("match_avg_ns", res.MatchAvgNs),
			zap.Float64("throughput_mb_s", res.ThroughputMBs))
		if r.onScenario != nil {
			r.onScenario(res)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) runScenario(s casefile.PerfScenario) PerfResult {
	res := PerfResult{Scenario: s, Status: Fail}

	if s.TextSize <= 0 {
		res.Notes = NoteTextSizeNotPositive
		return res
	}
	if s.Iterations <= 0 {
		res.Notes = NoteIterationsNotPositive
		return res
	}

	text, err := corpus.Generate(s.CorpusSpec())
	if err != nil {
		res.Notes = err.Error()
		return res
	}

	start := r.now()
	m, err := r.engine.Compile(s.Pattern)
	res.CompileNs = r.elapsed(start)
	if err != nil {
		res.Notes = NoteCompileErrorPrefix + err.Error()
		return res
	}

	var total int64
	matched := false
	for i := 0; i < s.Iterations; i++ {
		start := r.now()
		ok, err := m.MatchString(text)
		total += r.elapsed(start)
		if err != nil {
			res.Notes = NoteMatchErrorPrefix + err.Error()
			return res
		}
		if ok {
			matched = true
		}
	}

	res.MatchTotalNs = total
	res.MatchAvgNs = total / int64(s.Iterations)
	res.ThroughputMBs = Throughput(s.TextSize, s.Iterations, total)
	res.Matched = matched

	switch {
	case matched == s.ShouldMatch:
		res.Status = Pass
	case s.ShouldMatch:
		res.Notes = NoteExpectedMatchMissing
	default:
		res.Notes = NoteUnexpectedMatch
	}
	return res
}

// Throughput returns MB/s (1 MB = 1,048,576 bytes) for size bytes scanned
// iterations times in totalNs nanoseconds. It is 0 when totalNs is 0.
func Throughput(size, iterations int, totalNs int64) float64 {
	if totalNs <= 0 {
		return 0
	}
	mb := float64(size) * float64(iterations) / bytesPerMB
	return mb / (float64(totalNs) / nanosPerSecond)
}
