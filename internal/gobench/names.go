package gobench

import (
	"fmt"
	"strings"
	"unicode"
)

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

// splitWords breaks a scenario name on anything that is not an ASCII letter or digit.
func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
}

// FuncSuffix turns a scenario name into an exported Go identifier suffix,
// e.g. "repeat_x" becomes "RepeatX".
func FuncSuffix(name string) string {
	var b strings.Builder
	for _, w := range splitWords(name) {
		if w[0] >= 'a' && w[0] <= 'z' {
			w = UpperFirst(w)
		}
		b.WriteString(w)
	}
	s := b.String()
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "Scenario" + s
	}
	return s
}

// FileStem turns a scenario name into a safe file name stem.
func FileStem(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return "scenario"
	}
	return strings.Join(words, "_")
}

// uniquer hands out names, suffixing repeats with a counter.
type uniquer map[string]bool

func (u uniquer) next(s string) string {
	candidate := s
	for i := 2; u[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", s, i)
	}
	u[candidate] = true
	return candidate
}
