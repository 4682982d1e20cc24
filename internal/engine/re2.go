package engine

import re2 "github.com/wasilibs/go-re2"

func init() {
	register(RE2{})
}

// RE2 is the C++ RE2 library via github.com/wasilibs/go-re2.
type RE2 struct{}

// Name implements Engine.
func (RE2) Name() string { return "re2" }

// Compile implements Engine.
func (RE2) Compile(pattern string) (Matcher, error) {
	re, err := re2.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re2Matcher{re}, nil
}

type re2Matcher struct {
	re *re2.Regexp
}

func (m re2Matcher) FindString(text string) (string, bool, error) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return "", false, nil
	}
	return text[loc[0]:loc[1]], true, nil
}

func (m re2Matcher) MatchString(text string) (bool, error) {
	return m.re.MatchString(text), nil
}
