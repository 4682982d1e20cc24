// Package corpus builds the deterministic subject strings used by performance scenarios.
package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how a corpus is synthesized.
type Strategy int

const (
	// Repeat tiles the base string up to the target size.
	Repeat Strategy = iota
	// Inject tiles the base string and inserts the pattern at a fixed interval.
	Inject
	// Anchor wraps repeated filler between a fixed prefix and suffix.
	Anchor
)

// DefaultInjectInterval is used by Inject when the configured interval is zero.
const DefaultInjectInterval = 256

var strategyNames = map[Strategy]string{
	Repeat: "repeat",
	Inject: "inject",
	Anchor: "anchor",
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a configuration value to a Strategy. Matching is
// case-insensitive and an empty value selects Repeat.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "repeat":
		return Repeat, nil
	case "inject":
		return Inject, nil
	case "anchor":
		return Anchor, nil
	}
	return 0, fmt.Errorf("unknown text_strategy: %s", s)
}

// Spec describes a corpus to generate.
type Spec struct {
	Strategy       Strategy
	Base           string
	Size           int
	Pattern        string // inserted literally by Inject
	InsertInterval int    // Inject only
	AnchorPrefix   string // Anchor only
	AnchorSuffix   string // Anchor only
}

// Generate builds the corpus described by spec. On success the result is
// exactly spec.Size bytes long.
func Generate(spec Spec) (string, error) {
	switch spec.Strategy {
	case Repeat:
		return RepeatText(spec.Base, spec.Size)
	case Inject:
		return InjectText(spec.Base, spec.Size, spec.Pattern, spec.InsertInterval)
	case Anchor:
		return AnchorText(spec.AnchorPrefix, spec.AnchorSuffix, spec.Base, spec.Size)
	}
	return "", fmt.Errorf("unknown text_strategy: %s", spec.Strategy)
}

// RepeatText tiles base end to end until it is size bytes long. The final
// tile is cut on a byte boundary.
func RepeatText(base string, size int) (string, error) {
	if base == "" {
		return "", errors.New("text_base cannot be empty for repeat strategy")
	}
	if size < 0 {
		return "", fmt.Errorf("negative text size: %d", size)
	}

	var b strings.Builder
	b.Grow(size)
	for b.Len() < size {
		remaining := size - b.Len()
		if remaining >= len(base) {
			b.WriteString(base)
		} else {
			b.WriteString(base[:remaining])
		}
	}
	return b.String(), nil
}

// InjectText starts from RepeatText(base, size) and inserts a copy of pattern
// after every interval bytes of it, stopping once the result is size bytes.
// Insertions shift the rest of the text, so complete copies start at offsets
// k*(interval+len(pattern)) - len(pattern) for k >= 1.
func InjectText(base string, size int, pattern string, interval int) (string, error) {
	text, err := RepeatText(base, size)
	if err != nil {
		return "", err
	}
	if interval <= 0 {
		interval = DefaultInjectInterval
	}

	var b strings.Builder
	b.Grow(size)
	for pos := 0; b.Len() < size; {
		end := min(pos+interval, len(text))
		writeCapped(&b, text[pos:end], size)
		pos = end
		writeCapped(&b, pattern, size)
	}
	return b.String(), nil
}

// writeCapped appends as much of s as fits below limit bytes.
func writeCapped(b *strings.Builder, s string, limit int) {
	if n := limit - b.Len(); len(s) > n {
		s = s[:n]
	}
	b.WriteString(s)
}

// AnchorText returns prefix + filler + suffix where the filler is repeated
// from base to make the whole string size bytes long.
func AnchorText(prefix, suffix, base string, size int) (string, error) {
	if prefix == "" || suffix == "" {
		return "", errors.New("anchor strategy requires anchor_prefix and anchor_suffix")
	}
	if size < len(prefix)+len(suffix) {
		return "", errors.New("text_size too small for anchor strategy")
	}

	filler, err := RepeatText(base, size-len(prefix)-len(suffix))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(prefix)
	b.WriteString(filler)
	b.WriteString(suffix)
	return b.String(), nil
}
