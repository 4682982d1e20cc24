// Package engine adapts regex libraries to the small surface the runners time.
package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Engine compiles patterns.
type Engine interface {
	Name() string
	Compile(pattern string) (Matcher, error)
}

// Matcher is a compiled pattern.
type Matcher interface {
	// FindString returns the leftmost match in text and whether one exists.
	// A non-nil error means the engine gave up without a verdict.
	FindString(text string) (string, bool, error)
	// MatchString reports whether text contains any match.
	MatchString(text string) (bool, error)
}

// DefaultEngine is used when no engine is configured.
const DefaultEngine = "stdlib"

var registry = map[string]Engine{}

func register(e Engine) {
	registry[e.Name()] = e
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// Names lists the registered engines in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
