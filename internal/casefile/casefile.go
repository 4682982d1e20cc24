// Package casefile parses the key=value case files that drive a benchmark run.
//
// A case file is a sequence of records separated by lines containing exactly
// "---". Each record is a block of key=value lines:
//
//	name=literal
//	pattern=hello
//	text=hello world
//	should_match=true
//	---
//	name=tab_escape
//	pattern=a\tb
//	text=xa\tbx
//	should_match=yes
//
// Values are unescaped (\n, \t, \r and \\); any other escaped character is
// kept without its backslash. Unknown keys and malformed lines reject the
// whole file. Boolean values outside the accepted vocabulary fall back to the
// field default instead.
package casefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Separator terminates a record.
const Separator = "---"

// maxLineSize bounds a single line; subject texts can be long.
const maxLineSize = 64 * 1024 * 1024

// ParseError reports a malformed case file.
type ParseError struct {
	Line int // 1-based; 0 when the error is not tied to a line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// record is implemented by the pointer types the parser accumulates into.
type record interface {
	set(key, value string) error
	recordName() string
}

// parse folds the lines of r into records. newRecord returns a record with all
// defaults applied; a record is emitted at a separator or at end of input only
// if at least one key was set since the previous separator.
func parse[T any, P interface {
	*T
	record
}](r io.Reader, newRecord func() T) ([]T, error) {
	var (
		records  []T
		haveData bool
		lineNo   int
		startAt  int
	)
	current := newRecord()
	seen := make(map[string]int)

	finish := func() error {
		name := P(&current).recordName()
		if name == "" {
			return &ParseError{Line: startAt, Msg: "record is missing a name"}
		}
		if prev, ok := seen[name]; ok {
			return &ParseError{Line: startAt, Msg: fmt.Sprintf("duplicate name %q (first defined at line %d)", name, prev)}
		}
		seen[name] = startAt
		records = append(records, current)
		current = newRecord()
		haveData = false
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == Separator {
			if haveData {
				if err := finish(); err != nil {
					return nil, err
				}
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid line: %s", line)}
		}
		key = strings.TrimSpace(key)
		value = Unescape(strings.TrimSpace(value))

		if err := P(&current).set(key, value); err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		if !haveData {
			startAt = lineNo
		}
		haveData = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}

	if haveData {
		if err := finish(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Unescape expands \n, \t, \r and \\. Any other escaped character is emitted
// without the backslash, and a trailing lone backslash is dropped.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ParseBool accepts a fixed vocabulary and returns def for anything else.
func ParseBool(value string, def bool) bool {
	switch value {
	case "true", "TRUE", "True", "1", "yes", "YES", "Yes":
		return true
	case "false", "FALSE", "False", "0", "no", "NO", "No":
		return false
	}
	return def
}

func parseCount(value string) (int, error) {
	n, err := strconv.ParseUint(value, 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %s", value)
	}
	return int(n), nil
}
