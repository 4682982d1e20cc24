// Package gobench exports performance scenarios as a Go benchmark file so the
// same corpora can be measured with `go test -bench`.
package gobench

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/corpus"
)

// BenchFile is the name of the generated benchmark file.
const BenchFile = "scenarios_bench_test.go"

// TestdataDir holds the generated corpora, relative to the output directory.
const TestdataDir = "testdata"

// engines maps engine names to packages exposing a regexp-compatible
// MustCompile/MatchString API.
var engines = map[string]struct{ path, name string }{
	"stdlib": {"regexp", "regexp"},
	"re2":    {"github.com/wasilibs/go-re2", "re2"},
}

// Engines lists the engines Write can target.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures an export.
type Options struct {
	// Dir receives BenchFile and the testdata directory.
	Dir string
	// Package is the package clause of the generated file.
	Package string
	// Engine is one of Engines().
	Engine string
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if _, ok := engines[o.Engine]; !ok {
		return fmt.Errorf("engine %q cannot be exported (supported: %s)", o.Engine, strings.Join(Engines(), ", "))
	}
	return nil
}

// Skip records a scenario that was not exported.
type Skip struct {
	Name   string
	Reason string
}

// Result summarises an export.
type Result struct {
	BenchFile  string
	Benchmarks []string
	Skipped    []Skip
}

// Write generates the corpus files and the benchmark source for scenarios.
// Scenarios that could never run (zero size or iterations, or a corpus that
// cannot be generated) are skipped and listed in the result.
func Write(scenarios []casefile.PerfScenario, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	eng := engines[opts.Engine]

	dataDir := filepath.Join(opts.Dir, TestdataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dataDir, err)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by regbench export. DO NOT EDIT.")
	f.ImportName(eng.path, eng.name)

	res := &Result{BenchFile: filepath.Join(opts.Dir, BenchFile)}
	funcs := uniquer{}
	stems := uniquer{}

	for _, s := range scenarios {
		text, reason := corpusFor(s)
		if reason != "" {
			res.Skipped = append(res.Skipped, Skip{Name: s.Name, Reason: reason})
			f.Comment(fmt.Sprintf("Skipped %s: %s", s.Name, reason))
			f.Line()
			continue
		}

		stem := stems.next(FileStem(s.Name))
		dataFile := filepath.Join(dataDir, stem+".txt")
		if err := os.WriteFile(dataFile, []byte(text), 0o644); err != nil {
			return nil, fmt.Errorf("writing corpus for %s: %w", s.Name, err)
		}

		fn := "Benchmark" + funcs.next(FuncSuffix(s.Name))
		benchmarkFunc(f, fn, s, eng.path, TestdataDir+"/"+stem+".txt")
		res.Benchmarks = append(res.Benchmarks, fn)
	}

	if err := f.Save(res.BenchFile); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", res.BenchFile, err)
	}
	return res, nil
}

func corpusFor(s casefile.PerfScenario) (string, string) {
	if s.TextSize <= 0 {
		return "", "text_size must be > 0"
	}
	if s.Iterations <= 0 {
		return "", "iterations must be > 0"
	}
	text, err := corpus.Generate(s.CorpusSpec())
	if err != nil {
		return "", err.Error()
	}
	return text, ""
}

// benchmarkFunc emits:
//
//	func BenchmarkX(b *testing.B) {
//		data, err := os.ReadFile("testdata/x.txt")
//		...
//		re := regexp.MustCompile(pattern)
//		b.SetBytes(int64(len(input)))
//		b.ResetTimer()
//		for i := 0; i < b.N; i++ { if re.MatchString(input) != want { b.Fatalf(...) } }
//	}
func benchmarkFunc(f *jen.File, name string, s casefile.PerfScenario, enginePath, dataPath string) {
	comment := fmt.Sprintf("%s runs scenario %q (%s, %d bytes).", name, s.Name, s.TextStrategy, s.TextSize)
	if s.Description != "" {
		comment += " " + s.Description
	}
	f.Comment(comment)

	f.Func().Id(name).Params(jen.Id("b").Op("*").Qual("testing", "B")).Block(
		jen.List(jen.Id("data"), jen.Err()).Op(":=").Qual("os", "ReadFile").Call(jen.Lit(dataPath)),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Id("b").Dot("Fatal").Call(jen.Err()),
		),
		jen.Id("input").Op(":=").String().Call(jen.Id("data")),
		jen.Id("re").Op(":=").Qual(enginePath, "MustCompile").Call(jen.Lit(s.Pattern)),
		jen.Line(),
		jen.Id("b").Dot("SetBytes").Call(jen.Int64().Call(jen.Len(jen.Id("input")))),
		jen.Id("b").Dot("ResetTimer").Call(),
		jen.For(
			jen.Id("i").Op(":=").Lit(0),
			jen.Id("i").Op("<").Id("b").Dot("N"),
			jen.Id("i").Op("++"),
		).Block(
			jen.If(jen.Id("re").Dot("MatchString").Call(jen.Id("input")).Op("!=").Lit(s.ShouldMatch)).Block(
				jen.Id("b").Dot("Fatalf").Call(jen.Lit("MatchString = %v, want %v"), jen.Op("!").Lit(s.ShouldMatch), jen.Lit(s.ShouldMatch)),
			),
		),
	)
	f.Line()
}
