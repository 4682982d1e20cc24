package gobench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/corpus"
)

func TestFuncSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"repeat_x", "RepeatX"},
		{"inject-needle 64k", "InjectNeedle64k"},
		{"AnchorBig", "AnchorBig"},
		{"1mb_scan", "Scenario1mbScan"},
		{"", "Scenario"},
		{"héllo", "HLlo"},
	}

	for _, tt := range tests {
		got := FuncSuffix(tt.input)
		if got != tt.want {
			t.Errorf("FuncSuffix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"repeat_x", "repeat_x"},
		{"inject needle/64k", "inject_needle_64k"},
		{"../escape", "escape"},
		{"", "scenario"},
	}

	for _, tt := range tests {
		got := FileStem(tt.input)
		if got != tt.want {
			t.Errorf("FileStem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUniquer(t *testing.T) {
	u := uniquer{}
	assert.Equal(t, "A", u.next("A"))
	assert.Equal(t, "A2", u.next("A"))
	assert.Equal(t, "A3", u.next("A"))
	assert.Equal(t, "A22", u.next("A2"))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"valid", Options{Dir: "out", Package: "bench", Engine: "stdlib"}, ""},
		{"no dir", Options{Package: "bench", Engine: "stdlib"}, "output directory cannot be empty"},
		{"no package", Options{Dir: "out", Engine: "re2"}, "package cannot be empty"},
		{"unsupported engine", Options{Dir: "out", Package: "bench", Engine: "regexp2"}, `engine "regexp2" cannot be exported (supported: re2, stdlib)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func scenario(name string, mutate func(*casefile.PerfScenario)) casefile.PerfScenario {
	s := casefile.NewPerfScenario()
	s.Name = name
	s.Pattern = "x"
	s.TextBase = "x"
	s.TextSize = 64
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	scenarios := []casefile.PerfScenario{
		scenario("repeat_x", func(s *casefile.PerfScenario) { s.Description = "tiles x" }),
		scenario("repeat-x", nil),
		scenario("zero", func(s *casefile.PerfScenario) { s.TextSize = 0 }),
		scenario("anchored", func(s *casefile.PerfScenario) {
			s.Pattern = `^BEGIN.*END$`
			s.TextStrategy = corpus.Anchor
			s.AnchorPrefix = "BEGIN"
			s.AnchorSuffix = "END"
			s.ShouldMatch = false
		}),
		scenario("no_base", func(s *casefile.PerfScenario) { s.TextBase = "" }),
	}

	res, err := Write(scenarios, Options{Dir: dir, Package: "bench", Engine: "re2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"BenchmarkRepeatX", "BenchmarkRepeatX2", "BenchmarkAnchored"}, res.Benchmarks)
	assert.Equal(t, []Skip{
		{Name: "zero", Reason: "text_size must be > 0"},
		{Name: "no_base", Reason: "text_base cannot be empty for repeat strategy"},
	}, res.Skipped)

	for _, name := range []string{"repeat_x.txt", "repeat_x2.txt", "anchored.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, TestdataDir, name))
		require.NoError(t, err, name)
		assert.Len(t, data, 64)
	}

	src, err := os.ReadFile(res.BenchFile)
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "// Code generated by regbench export. DO NOT EDIT.")
	assert.Contains(t, code, "package bench")
	assert.Contains(t, code, `"github.com/wasilibs/go-re2"`)
	assert.Contains(t, code, "func BenchmarkRepeatX(b *testing.B) {")
	assert.Contains(t, code, `os.ReadFile("testdata/repeat_x2.txt")`)
	assert.Contains(t, code, `re2.MustCompile("^BEGIN.*END$")`)
	assert.Contains(t, code, "b.SetBytes(int64(len(input)))")
	assert.Contains(t, code, "if re.MatchString(input) != false {")
	assert.Contains(t, code, "// Skipped zero: text_size must be > 0")
	assert.Contains(t, code, "tiles x")
}

func TestWriteInvalidOptions(t *testing.T) {
	_, err := Write(nil, Options{Dir: t.TempDir(), Package: "bench", Engine: "pcre"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}
