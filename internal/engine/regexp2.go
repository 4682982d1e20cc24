package engine

import "github.com/dlclark/regexp2"

func init() {
	register(Regexp2{})
}

// Regexp2 is the backtracking engine from github.com/dlclark/regexp2, run
// with RE2-compatible syntax so the shared case files stay meaningful.
type Regexp2 struct{}

// Name implements Engine.
func (Regexp2) Name() string { return "regexp2" }

// Compile implements Engine.
func (Regexp2) Compile(pattern string) (Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, err
	}
	return regexp2Matcher{re}, nil
}

type regexp2Matcher struct {
	re *regexp2.Regexp
}

// FindString returns regexp2's match error (a timeout when MatchTimeout is
// set) instead of a verdict.
func (m regexp2Matcher) FindString(text string) (string, bool, error) {
	match, err := m.re.FindStringMatch(text)
	if err != nil {
		return "", false, err
	}
	if match == nil {
		return "", false, nil
	}
	return match.String(), true, nil
}

func (m regexp2Matcher) MatchString(text string) (bool, error) {
	return m.re.MatchString(text)
}
