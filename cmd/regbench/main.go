// Command regbench runs regex functionality cases and performance scenarios
// and writes the result tables shared by every harness implementation.
//
// Usage:
//
//	regbench --mode functionality [--cases FILE] [--output FILE] [-v]
//	regbench --mode performance --engine re2
//	regbench export --dir bench --package bench
//	regbench engines
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/KromDaniel/regbench/internal/casefile"
	"github.com/KromDaniel/regbench/internal/console"
	"github.com/KromDaniel/regbench/internal/gobench"
	"github.com/KromDaniel/regbench/internal/settings"
	"github.com/KromDaniel/regbench/pkg/regbench"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Failed
// cases do not change the exit code; only run-level errors do.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	config   string
	engine   string
	logLevel string
	color    string
}

type runFlags struct {
	mode    string
	cases   string
	output  string
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalFlags
	var f runFlags

	root := &cobra.Command{
		Use:   "regbench",
		Short: "Comparative regex benchmark harness",
		Long: `regbench executes regex functionality cases and performance scenarios
described in key=value case files and writes tab-separated result tables.

Paths and the engine default to .regbench.yaml when present, then to the
built-in benchmark/data and benchmark/results locations.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runBench(g, f, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "settings file (default "+settings.DefaultFile+" when present)")
	pf.StringVar(&g.engine, "engine", "", "regex engine (see `regbench engines`)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.color, "color", "auto", "colorize console output: auto, always, never")

	fl := root.Flags()
	fl.StringVar(&f.mode, "mode", "", "functionality or performance")
	fl.StringVar(&f.cases, "cases", "", "case file (default depends on --mode)")
	fl.StringVar(&f.output, "output", "", "result table (default depends on --mode)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "print one status line per case")
	_ = root.MarkFlagRequired("mode")

	root.AddCommand(newExportCmd(&g, stdout, stderr))
	root.AddCommand(newEnginesCmd(stdout))
	return root
}

func runBench(g globalFlags, f runFlags, stdout, stderr io.Writer) error {
	mode, err := settings.ParseMode(f.mode)
	if err != nil {
		return err
	}
	s, err := settings.Load(g.config)
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, firstNonEmpty(g.logLevel, s.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if s.Source != "" {
		logger.Debug("loaded settings", zap.String("path", s.Source))
	}

	paths := s.PathsFor(mode)
	printer := console.NewPrinter(stdout, f.verbose, useColor(g.color, stdout))

	rep, err := regbench.Run(regbench.Options{
		Mode:       mode,
		CasesPath:  firstNonEmpty(f.cases, paths.Cases),
		OutputPath: firstNonEmpty(f.output, paths.Output),
		Engine:     firstNonEmpty(g.engine, s.Engine),
		Logger:     logger,
		OnCase:     printer.Case,
		OnScenario: printer.Scenario,
	})
	if err != nil {
		return err
	}

	summary := console.Summary{
		Title:      "Functionality Summary",
		Noun:       "Cases",
		Total:      rep.Total,
		Passed:     rep.Passed,
		OutputPath: rep.OutputPath,
	}
	if mode == regbench.Performance {
		summary.Title = "Performance Summary"
		summary.Noun = "Scenarios"
		summary.MeanThroughput = rep.MeanThroughput
	}
	printer.Summary(summary)
	return nil
}

func newExportCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var cases string
	opts := gobench.Options{Package: "bench"}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export performance scenarios as a Go benchmark file",
		Long: `Generates the scenario corpora under DIR/testdata and a Go benchmark
file so the same scenarios can be measured with "go test -bench".`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := settings.Load(g.config)
			if err != nil {
				return err
			}
			logger, err := newLogger(stderr, firstNonEmpty(g.logLevel, s.LogLevel))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			path := firstNonEmpty(cases, s.Performance.Cases)
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			defer file.Close()

			scenarios, err := casefile.ParsePerfScenarios(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(scenarios) == 0 {
				return regbench.ErrNoScenarios
			}

			opts.Engine = firstNonEmpty(g.engine, s.Engine)
			res, err := gobench.Write(scenarios, opts)
			if err != nil {
				return err
			}
			for _, skip := range res.Skipped {
				logger.Warn("scenario not exported", zap.String("scenario", skip.Name), zap.String("reason", skip.Reason))
			}
			fmt.Fprintf(stdout, "Wrote %d benchmarks to %s\n", len(res.Benchmarks), res.BenchFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&cases, "cases", "", "performance scenario file (default from settings)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory")
	cmd.Flags().StringVar(&opts.Package, "package", opts.Package, "package name of the generated file")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func newEnginesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the available regex engines",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			exportable := make(map[string]bool)
			for _, name := range gobench.Engines() {
				exportable[name] = true
			}
			for _, name := range regbench.Engines() {
				line := name
				if exportable[name] {
					line += " (exportable)"
				}
				fmt.Fprintln(stdout, line)
			}
			return nil
		},
	}
}

// newLogger builds a console-encoded zap logger on w.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
