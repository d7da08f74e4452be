// Package billing carries the CPT/ICD billing-rule text documents that the
// instruction compiler embeds verbatim into compiled instructions.
//
// The rule documents are opaque data, not logic: this package only stores,
// orders, and merges them. The decision text itself is maintained by coding
// staff and reviewed against current CMS guidance.
package billing

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed assets/*.txt
var assetFS embed.FS

// builtinOrder fixes the order in which the embedded rule documents appear
// in compiled instructions. E/M level selection comes first because it
// governs the primary CPT code of nearly every encounter.
var builtinOrder = []struct {
	name string
	file string
}{
	{"E/M Office Visit Level Selection", "assets/em_office_visits.txt"},
	{"ICD-10 Specificity Guidelines", "assets/icd10_specificity.txt"},
	{"CPT Modifier Rules", "assets/cpt_modifiers.txt"},
}

// Rule is a single named billing-rule document. Text is free-form and is
// concatenated into compiled instructions without interpretation.
type Rule struct {
	// Name is a short human-readable title shown above the rule text.
	Name string `yaml:"name" json:"name"`

	// Text is the full rule document.
	Text string `yaml:"text" json:"text"`
}

// Ruleset is an ordered collection of billing rules. The zero value is an
// empty ruleset. Rulesets are immutable: Merge returns a new value.
type Ruleset struct {
	rules []Rule
}

// NewRuleset builds a ruleset from the given rules, preserving order.
func NewRuleset(rules ...Rule) Ruleset {
	return Ruleset{rules: append([]Rule(nil), rules...)}
}

// Default returns the built-in rulesets embedded in the binary, in their
// fixed order. The returned value is freshly built on each call so callers
// can merge into it freely.
func Default() Ruleset {
	rules := make([]Rule, 0, len(builtinOrder))
	for _, b := range builtinOrder {
		data, err := assetFS.ReadFile(b.file)
		if err != nil {
			// Embedded files are verified at build time; a read failure here
			// means a broken binary.
			panic(fmt.Sprintf("billing: embedded asset %s: %v", b.file, err))
		}
		rules = append(rules, Rule{Name: b.name, Text: strings.TrimRight(string(data), "\n")})
	}
	return Ruleset{rules: rules}
}

// Merge returns a new ruleset with custom appended after the receiver's
// rules. Clinic-defined rules therefore always follow the built-ins, so a
// clinic can refine but not silently pre-empt the standard guidance.
// Rules with empty Text are dropped.
func (rs Ruleset) Merge(custom ...Rule) Ruleset {
	merged := append([]Rule(nil), rs.rules...)
	for _, r := range custom {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		merged = append(merged, r)
	}
	return Ruleset{rules: merged}
}

// Rules returns the rules in stable order. The returned slice is a copy.
func (rs Ruleset) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// Len returns the number of rules in the set.
func (rs Ruleset) Len() int {
	return len(rs.rules)
}
