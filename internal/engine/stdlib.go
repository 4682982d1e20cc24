package engine

import "regexp"

func init() {
	register(Stdlib{})
}

// Stdlib is Go's regexp package.
type Stdlib struct{}

// Name implements Engine.
func (Stdlib) Name() string { return "stdlib" }

// Compile implements Engine.
func (Stdlib) Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return stdlibMatcher{re}, nil
}

type stdlibMatcher struct {
	re *regexp.Regexp
}

func (m stdlibMatcher) FindString(text string) (string, bool, error) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return "", false, nil
	}
	return text[loc[0]:loc[1]], true, nil
}

func (m stdlibMatcher) MatchString(text string) (bool, error) {
	return m.re.MatchString(text), nil
}
