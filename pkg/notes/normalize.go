package notes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// legacySeparator splits historical single-string macros of the form
// "trigger: phrase". Only the first occurrence splits; the phrase keeps any
// further ": " sequences intact.
const legacySeparator = ": "

// MacroSource is the tagged union of the two shapes a stored macro may take:
// a legacy bare string or a structured [MacroPhrase]. The union is resolved
// exactly once, at the [NormalizeMacros] boundary — downstream code only
// ever sees the normalized object form.
//
// MacroSource unmarshals from JSON as either a string or an object, so a
// heterogeneous settings array decodes directly into []MacroSource.
type MacroSource struct {
	legacy string
	entry  *MacroPhrase
}

// LegacyMacro wraps a historical bare-string macro.
func LegacyMacro(s string) MacroSource {
	return MacroSource{legacy: s}
}

// StructuredMacro wraps an already-structured macro.
func StructuredMacro(m MacroPhrase) MacroSource {
	return MacroSource{entry: &m}
}

// UnmarshalJSON accepts either a JSON string (legacy form) or a
// {"trigger": ..., "phrase": ...} object.
func (s *MacroSource) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = LegacyMacro(raw)
		return nil
	}
	var m MacroPhrase
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("notes: macro is neither a string nor an object: %w", err)
	}
	*s = StructuredMacro(m)
	return nil
}

// VocabularySource is the tagged union of the two shapes a stored
// vocabulary entry may take: a legacy bare term string or a structured
// [VocabularyEntry]. Resolved once by [NormalizeVocabulary].
type VocabularySource struct {
	legacy string
	entry  *VocabularyEntry
}

// LegacyTerm wraps a historical bare-string vocabulary term.
func LegacyTerm(s string) VocabularySource {
	return VocabularySource{legacy: s}
}

// StructuredTerm wraps an already-structured vocabulary entry.
func StructuredTerm(v VocabularyEntry) VocabularySource {
	return VocabularySource{entry: &v}
}

// UnmarshalJSON accepts either a JSON string (legacy form) or a
// {"term": ..., "intensifier": ...} object.
func (s *VocabularySource) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = LegacyTerm(raw)
		return nil
	}
	var v VocabularyEntry
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("notes: vocabulary entry is neither a string nor an object: %w", err)
	}
	*s = StructuredTerm(v)
	return nil
}

// NormalizeMacros upgrades a heterogeneous stored macro list to the
// structured form.
//
// Legacy bare strings are split on the first ": ": the left part becomes
// Trigger and the remainder (including any further ": " sequences) becomes
// Phrase. A string with no separator becomes a trigger-only entry with an
// empty Phrase.
//
// The result is always non-nil. Normalization is idempotent and never
// deduplicates — rejecting duplicate triggers is caller validation, done
// before insertion.
func NormalizeMacros(raw []MacroSource) []MacroPhrase {
	out := make([]MacroPhrase, 0, len(raw))
	for _, src := range raw {
		if src.entry != nil {
			out = append(out, *src.entry)
			continue
		}
		trigger, phrase, found := strings.Cut(src.legacy, legacySeparator)
		if !found {
			out = append(out, MacroPhrase{Trigger: src.legacy})
			continue
		}
		out = append(out, MacroPhrase{Trigger: trigger, Phrase: phrase})
	}
	return out
}

// NormalizeVocabulary upgrades a heterogeneous stored vocabulary list to
// the structured form. Legacy bare strings become {Term, Intensifier: 1};
// structured entries pass through with Intensifier defaulted to 1 when
// missing or non-positive.
//
// The result is always non-nil. Like [NormalizeMacros], idempotent and
// never deduplicating.
func NormalizeVocabulary(raw []VocabularySource) []VocabularyEntry {
	out := make([]VocabularyEntry, 0, len(raw))
	for _, src := range raw {
		if src.entry != nil {
			e := *src.entry
			if e.Intensifier <= 0 {
				e.Intensifier = 1
			}
			out = append(out, e)
			continue
		}
		out = append(out, VocabularyEntry{Term: src.legacy, Intensifier: 1})
	}
	return out
}
