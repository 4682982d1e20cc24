package runner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/KromDaniel/regbench/internal/casefile"
)

// RunCases executes cases in order and returns one result per case.
func (r *Runner) RunCases(cases []casefile.TestCase) []CaseResult {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		res := r.runCase(c)
		if res.Status == Fail {
			r.logger.Debug("case failed", zap.String("case", c.Name), zap.String("notes", res.Notes))
		}
		if r.onCase != nil {
			r.onCase(res)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) runCase(c casefile.TestCase) CaseResult {
	res := CaseResult{Case: c, Status: Fail}

	start := r.now()
	m, err := r.engine.Compile(c.Pattern)
	res.CompileNs = r.elapsed(start)

	if err != nil {
		if c.ShouldCompile {
			res.Notes = NoteCompileErrorPrefix + err.Error()
		} else {
			res.Status = Pass
		}
		return res
	}
	res.CompileOK = true

	if !c.ShouldCompile {
		res.Notes = NoteUnexpectedCompile
		return res
	}

	start = r.now()
	matched, found, err := m.FindString(c.Text)
	res.MatchNs = r.elapsed(start)
	if err != nil {
		res.Notes = NoteMatchErrorPrefix + err.Error()
		return res
	}
	res.ActualMatch = found

	switch {
	case found && c.VerifyFullMatch:
		if matched == c.ExpectedMatch {
			res.MatchVerified = true
		} else {
			res.Notes = fmt.Sprintf("expected_full_match:%s, got:%s", c.ExpectedMatch, matched)
		}
	case !found && c.VerifyFullMatch && c.ExpectedMatch == "" && !c.ShouldMatch:
		// Expected no match and verified that none exists.
		res.MatchVerified = true
	}

	switch {
	case c.ShouldMatch != found:
		if found {
			res.Notes = NoteUnexpectedMatch
		} else {
			res.Notes = NoteMissingMatch
		}
	case !c.VerifyFullMatch || res.MatchVerified:
		res.Status = Pass
	case res.Notes == "":
		res.Notes = NoteFullMatchFailed
	}
	return res
}
