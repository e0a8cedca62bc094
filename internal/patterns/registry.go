// Package patterns owns the ordered, compiled extraction rules per field.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/weighlog/weighbridge-parser/constants"
)

// Rule is a single compiled extraction pattern bound to a field at a fixed
// priority index. Lower index means more specific.
type Rule struct {
	re    *regexp.Regexp
	field constants.Field
	index int
}

// Field returns the field this rule extracts.
func (r Rule) Field() constants.Field { return r.field }

// Index returns the rule's priority rank within its field (0 = most specific).
func (r Rule) Index() int { return r.index }

// Captures applies the rule to text and returns the capture groups of the
// first match. The boolean reports whether the rule matched at all.
func (r Rule) Captures(text string) ([]string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Registry holds the compiled rules for every field. It is immutable after
// construction and safe to share across goroutines without locks.
type Registry struct {
	rules map[constants.Field][]Rule
}

// New compiles the given rule sources, preserving per-field order. Patterns
// are matched case-insensitively ("kg" vs "KG" in OCR output). A pattern that
// fails to compile is a fatal configuration error, reported at construction
// rather than per document.
func New(sources map[constants.Field][]string) (*Registry, error) {
	rules := make(map[constants.Field][]Rule, len(sources))
	for field, srcs := range sources {
		compiled := make([]Rule, 0, len(srcs))
		for i, src := range srcs {
			re, err := regexp.Compile(`(?i)` + src)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %s[%d]: %w", field, i, err)
			}
			compiled = append(compiled, Rule{re: re, field: field, index: i})
		}
		rules[field] = compiled
	}
	return &Registry{rules: rules}, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry built from DefaultSources.
// Compiled exactly once; the built-in table failing to compile is a
// programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(DefaultSources)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// RulesFor returns the ordered rule list for a field, most specific first.
// The returned slice must not be mutated.
func (r *Registry) RulesFor(field constants.Field) []Rule {
	return r.rules[field]
}

// Fields returns all fields with at least one rule, in stable order.
func (r *Registry) Fields() []constants.Field {
	out := make([]constants.Field, 0, len(r.rules))
	for f := range r.rules {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
