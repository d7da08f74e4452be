// Package compiler merges a clinician's note-structure selection, specialty
// template, macro phrases, custom vocabulary, and billing rules into a
// single instruction document for the downstream language model.
//
// The compiler is pure: it performs no I/O, never errors, and produces
// byte-identical output for identical input, which supports caching and
// snapshot testing. Absent inputs omit their section entirely — the output
// never contains an empty header.
package compiler

import (
	"fmt"
	"strings"

	"github.com/emberhealth/notekit/pkg/notes"
)

// Section headings and directives. Fixed text: downstream prompt caches key
// on the compiled string, so wording changes invalidate every cache entry.
const (
	templateHeading     = "Specialty template guidance:"
	instructionsHeading = "Additional Specific Instructions:"
	macroHeading        = "Macro Phrases:"
	vocabularyHeading   = "Custom Vocabulary:"
	vocabularyLead      = "Pay special attention to the correct spelling and usage of these terms:"
	billingHeading      = "Billing and Coding Rules:"
	billingLead         = "Apply the following rules when proposing billing codes for this encounter:"

	paragraphDirective = "Write each section as cohesive narrative paragraphs."
	bulletDirective    = "Write each section as concise bullet points."
	diagnosesDirective = "Include the relevant ICD-10 codes for each diagnosis addressed during the encounter."

	closingDirective = "Maintain clinical accuracy, be concise, and use plain language unless clinical terminology is necessary."
)

// Compile assembles the instruction document from input.
//
// Section order is fixed: base prompt, template instructions, format
// directive, diagnosis directive, custom instructions, macro phrases,
// custom vocabulary, billing rules, closing guidance. Optional sections
// whose input is absent are omitted entirely.
//
// Compile is total: any Structure value (including unrecognised ones)
// produces a valid instruction string, and an input with only Structure
// set produces a minimal one.
func Compile(input notes.CompilationInput) string {
	sections := []string{basePrompt(input.Structure)}

	// ── Specialty template ────────────────────────────────────────────────────
	if tmpl := strings.TrimSpace(input.TemplateInstructions); tmpl != "" {
		sections = append(sections, templateHeading+"\n"+tmpl)
	}

	// ── Output format ─────────────────────────────────────────────────────────
	// Advisory only: nothing downstream verifies the model honored it.
	sections = append(sections, formatDirective(input.OutputFormat))

	// ── Diagnoses ─────────────────────────────────────────────────────────────
	if input.ShowDiagnoses {
		sections = append(sections, diagnosesDirective)
	}

	// ── Custom instructions ───────────────────────────────────────────────────
	if custom := strings.TrimSpace(input.CustomInstructions); custom != "" {
		sections = append(sections, instructionsHeading+"\n"+custom)
	}

	// ── Macro phrases ─────────────────────────────────────────────────────────
	if len(input.MacroPhrases) > 0 {
		sections = append(sections, macroSection(input.MacroPhrases))
	}

	// ── Custom vocabulary ─────────────────────────────────────────────────────
	if len(input.CustomVocabulary) > 0 {
		sections = append(sections, vocabularySection(input.CustomVocabulary))
	}

	// ── Billing rules ─────────────────────────────────────────────────────────
	if len(input.BillingRules) > 0 {
		sections = append(sections, billingSection(input))
	}

	sections = append(sections, closingDirective)

	return strings.Join(sections, "\n\n")
}

// formatDirective maps the output format to its guidance line. Anything
// other than bullet_points (including an unset format) gets the paragraph
// directive so the compiled document is always complete.
func formatDirective(f notes.OutputFormat) string {
	if f == notes.FormatBulletPoints {
		return bulletDirective
	}
	return paragraphDirective
}

// macroSection renders one line per macro. Entries whose Phrase is empty
// come from legacy bare strings without a ": " separator; they are emitted
// verbatim, exactly as stored.
func macroSection(macros []notes.MacroPhrase) string {
	var sb strings.Builder
	sb.WriteString(macroHeading)
	for _, m := range macros {
		sb.WriteString("\n- ")
		if m.Phrase == "" {
			sb.WriteString(m.Trigger)
			continue
		}
		fmt.Fprintf(&sb, "If trigger '%s' is typed, expand to: '%s'", m.Trigger, m.Phrase)
	}
	return sb.String()
}

// vocabularySection renders one attention line per term, with sound-alike
// hints when the entry carries any.
func vocabularySection(vocab []notes.VocabularyEntry) string {
	var sb strings.Builder
	sb.WriteString(vocabularyHeading)
	sb.WriteString("\n")
	sb.WriteString(vocabularyLead)
	for _, v := range vocab {
		fmt.Fprintf(&sb, "\n- Term: '%s'", v.Term)
		if len(v.SoundsLike) > 0 {
			fmt.Fprintf(&sb, " (may sound like: %s)", strings.Join(v.SoundsLike, ", "))
		}
	}
	return sb.String()
}

// billingSection concatenates the rule documents verbatim under their
// names. The rule text is opaque data owned by pkg/billing.
func billingSection(input notes.CompilationInput) string {
	var sb strings.Builder
	sb.WriteString(billingHeading)
	sb.WriteString("\n")
	sb.WriteString(billingLead)
	for _, r := range input.BillingRules {
		sb.WriteString("\n\n")
		if r.Name != "" {
			sb.WriteString(r.Name)
			sb.WriteString("\n")
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}
