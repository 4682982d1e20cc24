// Package report writes run results as tab-separated tables.
//
// Column names and order are shared with the other harness implementations
// and must not change.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KromDaniel/regbench/internal/runner"
)

// CaseColumns is the functionality table header.
var CaseColumns = []string{
	"name", "should_compile", "compile_ok", "should_match", "actual_match",
	"verify_full_match", "match_verified", "compile_ns", "match_ns", "status", "notes",
}

// PerfColumns is the performance table header.
var PerfColumns = []string{
	"name", "pattern", "text_size", "iterations", "compile_ns", "match_total_ns",
	"match_avg_ns", "throughput_mb_s", "matched", "status", "notes",
}

var fieldReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// Sanitize replaces tabs, carriage returns and newlines with single spaces so
// a value cannot break the one-record-per-line layout.
func Sanitize(s string) string {
	return fieldReplacer.Replace(s)
}

// WriteCases writes the functionality table to w.
func WriteCases(w io.Writer, results []runner.CaseResult) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, CaseColumns)
	for _, res := range results {
		writeRow(bw, []string{
			Sanitize(res.Case.Name),
			strconv.FormatBool(res.Case.ShouldCompile),
			strconv.FormatBool(res.CompileOK),
			strconv.FormatBool(res.Case.ShouldMatch),
			strconv.FormatBool(res.ActualMatch),
			strconv.FormatBool(res.Case.VerifyFullMatch),
			strconv.FormatBool(res.MatchVerified),
			strconv.FormatInt(res.CompileNs, 10),
			strconv.FormatInt(res.MatchNs, 10),
			string(res.Status),
			Sanitize(res.Notes),
		})
	}
	return bw.Flush()
}

// WritePerf writes the performance table to w.
func WritePerf(w io.Writer, results []runner.PerfResult) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, PerfColumns)
	for _, res := range results {
		writeRow(bw, []string{
			Sanitize(res.Scenario.Name),
			Sanitize(res.Scenario.Pattern),
			strconv.Itoa(res.Scenario.TextSize),
			strconv.Itoa(res.Scenario.Iterations),
			strconv.FormatInt(res.CompileNs, 10),
			strconv.FormatInt(res.MatchTotalNs, 10),
			strconv.FormatInt(res.MatchAvgNs, 10),
			strconv.FormatFloat(res.ThroughputMBs, 'f', 4, 64),
			strconv.FormatBool(res.Matched),
			string(res.Status),
			Sanitize(res.Notes),
		})
	}
	return bw.Flush()
}

// bufio.Writer keeps the first error and reports it from Flush.
func writeRow(bw *bufio.Writer, fields []string) {
	bw.WriteString(strings.Join(fields, "\t"))
	bw.WriteByte('\n')
}

// WriteFile creates path (and its parent directories) and writes the table
// produced by write into it.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return write(f)
}
