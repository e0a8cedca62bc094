// Package extract maps cleaned OCR text to raw field values using
// priority-ordered pattern fallback.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/patterns"
)

// RawField is one extracted value plus the priority index of the rule that
// produced it. The index is diagnostic metadata only.
type RawField struct {
	Value     string
	RuleIndex int
}

// Result maps fields to their raw extracted values. Absent fields simply have
// no entry. Immutable once returned by Extract.
type Result struct {
	fields map[constants.Field]RawField
}

// NewResult builds a Result from explicit raw fields. The map is copied, so
// later mutation by the caller cannot leak in.
func NewResult(fields map[constants.Field]RawField) Result {
	copied := make(map[constants.Field]RawField, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Result{fields: copied}
}

// Get returns the raw value for a field and whether it was extracted.
func (r Result) Get(field constants.Field) (string, bool) {
	rf, ok := r.fields[field]
	return rf.Value, ok
}

// RuleIndex returns the priority index of the rule that matched a field.
func (r Result) RuleIndex(field constants.Field) (int, bool) {
	rf, ok := r.fields[field]
	return rf.RuleIndex, ok
}

// Present returns how many fields were extracted.
func (r Result) Present() int { return len(r.fields) }

// Extractor runs the registry's rules over cleaned text. Stateless apart from
// the shared read-only registry; safe for concurrent use.
type Extractor struct {
	Registry *patterns.Registry
	Log      *slog.Logger
}

func NewExtractor(reg *patterns.Registry, log *slog.Logger) *Extractor {
	if reg == nil {
		reg = patterns.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{Registry: reg, Log: log}
}

// Extract tries each field's rules in registry order and keeps the first
// match (first-match-wins: later, looser rules are never consulted once a
// rule matched, to keep generic fallbacks from grabbing the wrong number).
// No match is not an error; the field is simply absent from the result.
// Extract never fails: empty or garbage input yields an empty result.
func (e *Extractor) Extract(text string) Result {
	fields := make(map[constants.Field]RawField)
	for _, field := range e.Registry.Fields() {
		for _, rule := range e.Registry.RulesFor(field) {
			groups, ok := rule.Captures(text)
			if !ok {
				continue
			}
			value := joinGroups(groups)
			if value == "" {
				continue
			}
			fields[field] = RawField{Value: value, RuleIndex: rule.Index()}
			e.Log.Debug("extract.match", "field", field, "rule_index", rule.Index(), "value", value)
			break
		}
	}
	e.Log.Info("extract.ok", "fields_matched", len(fields), "text_bytes", len(text))
	return Result{fields: fields}
}

// joinGroups reassembles a value from capture groups. OCR often splits a
// numeric token ("13 460"), so multi-group rules capture the fragments and we
// concatenate every non-empty group in capture order.
func joinGroups(groups []string) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(g)
	}
	return strings.TrimSpace(b.String())
}

var reAnyWeight = regexp.MustCompile(`(?i)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`)

// AllWeights lists every weight-looking token in the text. Debug aid for
// inspecting documents where the labeled patterns disagree.
func AllWeights(text string) []string {
	var out []string
	for _, m := range reAnyWeight.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
