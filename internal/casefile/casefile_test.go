package casefile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/KromDaniel/regbench/internal/corpus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{``, ``},
		{`plain`, `plain`},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`a\rb`, "a\rb"},
		{`a\\b`, `a\b`},
		{`a\qb`, `aqb`},
		{`\d+`, `d+`},
		{`\\d+`, `\d+`},
		{`trailing\`, `trailing`},
		{`\é`, `é`},
	}

	for _, tt := range tests {
		got := Unescape(tt.input)
		if got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "True", "1", "yes", "YES", "Yes"} {
		assert.True(t, ParseBool(v, false), v)
	}
	for _, v := range []string{"false", "FALSE", "False", "0", "no", "NO", "No"} {
		assert.False(t, ParseBool(v, true), v)
	}
	for _, v := range []string{"", "tRuE", "y", "on", "2"} {
		assert.True(t, ParseBool(v, true), v)
		assert.False(t, ParseBool(v, false), v)
	}
}

func TestParseTestCasesTwoRecords(t *testing.T) {
	input := `name=literal
pattern=hello
text=hello world
should_match=true
---
name=escaped
pattern=a\tb
text=xa\tbx
verify_full_match=yes
expected=a\tb
description=tab escapes
`
	got, err := ParseTestCases(strings.NewReader(input))
	require.NoError(t, err)

	want := []TestCase{
		{
			Name:          "literal",
			Pattern:       "hello",
			Text:          "hello world",
			ShouldCompile: true,
			ShouldMatch:   true,
		},
		{
			Name:            "escaped",
			Pattern:         "a\tb",
			Text:            "xa\tbx",
			ShouldCompile:   true,
			VerifyFullMatch: true,
			ExpectedMatch:   "a\tb",
			Description:     "tab escapes",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTestCases() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTestCasesSeparators(t *testing.T) {
	input := "---\n\n---\nname=a\n  ---  \n---\n\nname=b\n---\n\n"
	got, err := ParseTestCases(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestParseTestCasesEmpty(t *testing.T) {
	got, err := ParseTestCases(strings.NewReader("\n---\n\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseTestCasesValueKeepsEquals(t *testing.T) {
	got, err := ParseTestCases(strings.NewReader("name = eq \npattern= a=b \ntext=x=y\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "eq", got[0].Name)
	assert.Equal(t, "a=b", got[0].Pattern)
	assert.Equal(t, "x=y", got[0].Text)
}

func TestParseTestCasesLenientBool(t *testing.T) {
	got, err := ParseTestCases(strings.NewReader("name=x\nshould_compile=maybe\nshould_match=perhaps\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].ShouldCompile)
	assert.False(t, got[0].ShouldMatch)
}

func TestParseTestCasesExpectedMatchAlias(t *testing.T) {
	got, err := ParseTestCases(strings.NewReader("name=x\nexpected_match=abc\n"))
	require.NoError(t, err)
	assert.Equal(t, "abc", got[0].ExpectedMatch)
}

func TestParseTestCasesErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"missing equals", "name=a\nthis is not a pair\n", 2, "invalid line: this is not a pair"},
		{"unknown key", "name=a\n---\nname=b\ncolour=red\n", 4, "unknown key: colour"},
		{"perf key in case file", "name=a\ntext_size=10\n", 2, "unknown key: text_size"},
		{"missing name", "pattern=a\n---\n", 1, "record is missing a name"},
		{"missing name at end", "name=a\n---\n\npattern=b\n", 4, "record is missing a name"},
		{"duplicate name", "name=a\n---\nname=a\n", 3, `duplicate name "a" (first defined at line 1)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTestCases(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, got)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantMsg, perr.Msg)
		})
	}
}

func TestParsePerfScenariosDefaults(t *testing.T) {
	input := `name=defaults
pattern=x
text_base=x
text_size=1000
---
name=full
pattern=needle
text_strategy=INJECT
text_base=hay
text_size=4096
iterations=25
should_match=no
insert_interval=0
anchor_prefix=<
anchor_suffix=>
description=every field
`
	got, err := ParsePerfScenarios(strings.NewReader(input))
	require.NoError(t, err)

	want := []PerfScenario{
		{
			Name:           "defaults",
			Pattern:        "x",
			TextStrategy:   corpus.Repeat,
			TextBase:       "x",
			TextSize:       1000,
			Iterations:     DefaultIterations,
			ShouldMatch:    true,
			InsertInterval: DefaultInsertInterval,
		},
		{
			Name:           "full",
			Pattern:        "needle",
			TextStrategy:   corpus.Inject,
			TextBase:       "hay",
			TextSize:       4096,
			Iterations:     25,
			ShouldMatch:    false,
			InsertInterval: 0,
			AnchorPrefix:   "<",
			AnchorSuffix:   ">",
			Description:    "every field",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePerfScenarios() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePerfScenariosErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"negative size", "name=a\ntext_size=-1\n", "line 2: invalid integer: -1"},
		{"non numeric iterations", "name=a\niterations=ten\n", "line 2: invalid integer: ten"},
		{"float interval", "name=a\ninsert_interval=1.5\n", "line 2: invalid integer: 1.5"},
		{"unknown strategy", "name=a\ntext_strategy=shuffle\n", "line 2: unknown text_strategy: shuffle"},
		{"case key in perf file", "name=a\nverify_full_match=true\n", "line 2: unknown key: verify_full_match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePerfScenarios(strings.NewReader(tt.input))
			require.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestParsePerfScenariosZeroValuesKept(t *testing.T) {
	got, err := ParsePerfScenarios(strings.NewReader("name=zero\ntext_size=0\niterations=0\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].TextSize)
	assert.Zero(t, got[0].Iterations)
}

func TestPerfScenarioCorpusSpec(t *testing.T) {
	s := NewPerfScenario()
	s.Pattern = "p"
	s.TextBase = "b"
	s.TextSize = 10
	s.AnchorPrefix = "<"
	s.AnchorSuffix = ">"

	spec := s.CorpusSpec()
	assert.Equal(t, corpus.Repeat, spec.Strategy)
	assert.Equal(t, "p", spec.Pattern)
	assert.Equal(t, 10, spec.Size)
	assert.Equal(t, DefaultInsertInterval, spec.InsertInterval)
	assert.Equal(t, "<", spec.AnchorPrefix)
	assert.Equal(t, ">", spec.AnchorSuffix)
}
