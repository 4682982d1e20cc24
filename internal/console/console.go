// Package console prints human-readable run progress. It never affects the
// result tables.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/KromDaniel/regbench/internal/runner"
)

// Printer writes per-record status lines when verbose, and run summaries always.
type Printer struct {
	verbose bool
	out     io.Writer
	pass    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
}

// NewPrinter creates a printer writing to w. Styles are applied only when
// color is true.
func NewPrinter(w io.Writer, verbose, color bool) *Printer {
	p := &Printer{verbose: verbose}
	p.SetOutput(w, color)
	return p
}

// SetOutput sets the writer and rebuilds the styles for it.
func (p *Printer) SetOutput(w io.Writer, color bool) {
	p.out = w

	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	p.pass = r.NewStyle().Foreground(lipgloss.Color("34"))
	p.fail = r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	p.muted = r.NewStyle().Foreground(lipgloss.Color("242"))
	p.bold = r.NewStyle().Bold(true)
}

// Verbose reports whether per-record lines are printed.
func (p *Printer) Verbose() bool {
	return p.verbose
}

func (p *Printer) status(s runner.Status) string {
	label := fmt.Sprintf("[%-5s]", s)
	if s == runner.Pass {
		return p.pass.Render(label)
	}
	return p.fail.Render(label)
}

// Case prints one functionality result.
func (p *Printer) Case(res runner.CaseResult) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, "%s %s %s %s\n", p.status(res.Status), res.Case.Name, p.muted.Render("::"), res.Notes)
}

// Scenario prints one performance result.
func (p *Printer) Scenario(res runner.PerfResult) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, "%s %s %s compile=%dns match_avg=%dns throughput=%.2f MB/s %s\n",
		p.status(res.Status), res.Scenario.Name, p.muted.Render("::"),
		res.CompileNs, res.MatchAvgNs, res.ThroughputMBs, res.Notes)
}

// Summary describes a finished run.
type Summary struct {
	Title      string
	Noun       string // "Cases" or "Scenarios"
	Total      int
	Passed     int
	OutputPath string
	// MeanThroughput is printed when non-zero.
	MeanThroughput float64
}

// Summary prints the end-of-run totals.
func (p *Printer) Summary(s Summary) {
	fmt.Fprintln(p.out, p.bold.Render(fmt.Sprintf("=== %s ===", s.Title)))
	fmt.Fprintf(p.out, "%s: %d, Passed: %d, Failed: %d\n", s.Noun, s.Total, s.Passed, s.Total-s.Passed)
	if s.MeanThroughput > 0 {
		fmt.Fprintf(p.out, "Mean throughput: %.2f MB/s\n", s.MeanThroughput)
	}
	fmt.Fprintf(p.out, "Results saved to %s\n", s.OutputPath)
}
