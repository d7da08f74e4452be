// Package notes defines the shared data model for the note-instruction
// compiler and the formatted-document renderer.
//
// These types form the lingua franca between the settings layer, the
// compiler, and the renderer. All values are caller-owned plain data: the
// transforms in this module never retain or mutate them.
package notes

import "github.com/emberhealth/notekit/pkg/billing"

// Structure identifies a clinical documentation format. The four built-in
// structures each define named sub-sections; unrecognised values are
// accepted and handled with a generic fallback prompt.
type Structure string

const (
	// StructureSOAP is the classic Subjective/Objective/Assessment/Plan note.
	StructureSOAP Structure = "SOAP"

	// StructureSOAPCombined merges Assessment and Plan into a single section.
	StructureSOAPCombined Structure = "SOAP_Combined"

	// StructureDAP is the Data/Assessment/Plan note common in behavioral health.
	StructureDAP Structure = "DAP"

	// StructureBIRP is the Behavior/Intervention/Response/Plan note.
	StructureBIRP Structure = "BIRP"
)

// IsValid reports whether s is one of the four built-in structures.
// Compilation does not require validity — unknown structures compile to a
// generic prompt — so callers use this only for UI validation.
func (s Structure) IsValid() bool {
	switch s {
	case StructureSOAP, StructureSOAPCombined, StructureDAP, StructureBIRP:
		return true
	}
	return false
}

// OutputFormat selects the narrative style requested from the language model.
type OutputFormat string

const (
	FormatParagraph    OutputFormat = "paragraph"
	FormatBulletPoints OutputFormat = "bullet_points"
)

// IsValid reports whether f is a recognised output format.
func (f OutputFormat) IsValid() bool {
	return f == FormatParagraph || f == FormatBulletPoints
}

// MacroPhrase is a short dictation trigger that expands to a longer phrase.
//
// Historically macros were stored as a single string "trigger: phrase";
// [NormalizeMacros] upgrades that form. Trigger is never empty for entries
// produced by the normalizer from non-empty input.
type MacroPhrase struct {
	// Trigger is the short string the clinician dictates or types.
	Trigger string `yaml:"trigger" json:"trigger"`

	// Phrase is the expansion. Empty when the stored legacy string carried
	// no ": " separator — such entries are emitted verbatim by the compiler.
	Phrase string `yaml:"phrase" json:"phrase"`
}

// VocabularyEntry is a domain-specific term supplied to bias speech
// recognition and the language model toward correct spellings.
type VocabularyEntry struct {
	// Term is the canonical spelling. For phonetic-boost vocabularies this
	// is a single token with no whitespace.
	Term string `yaml:"term" json:"term"`

	// Intensifier weights the term for keyword boosting. Defaults to 1;
	// recommended range 1–3.
	Intensifier int `yaml:"intensifier,omitempty" json:"intensifier,omitempty"`

	// SoundsLike lists known misrecognitions of Term (e.g. "zoll off" for
	// "Zoloft"). Optional; surfaced to the model as attention hints.
	SoundsLike []string `yaml:"sounds_like,omitempty" json:"sounds_like,omitempty"`
}

// CompilationInput gathers everything the compiler merges into a single
// instruction document. It is transient — constructed per save action and
// never persisted as a unit.
//
// Only Structure is required. Every other field is optional and omits its
// output section entirely when absent.
type CompilationInput struct {
	// Structure selects the base prompt block.
	Structure Structure

	// OutputFormat selects paragraph vs bullet-point guidance. The directive
	// is advisory text only; the compiler cannot validate the model's
	// eventual output against it.
	OutputFormat OutputFormat

	// ShowDiagnoses requests relevant ICD-10 codes in the note.
	ShowDiagnoses bool

	// CustomInstructions is clinician free text, appended verbatim (after
	// trimming) under its own sub-heading.
	CustomInstructions string

	// TemplateInstructions is the specialty template's instruction text,
	// taken from the active catalog template.
	TemplateInstructions string

	// MacroPhrases lists the clinician's dictation macros, already
	// normalized via [NormalizeMacros].
	MacroPhrases []MacroPhrase

	// CustomVocabulary lists the clinician's vocabulary entries, already
	// normalized via [NormalizeVocabulary].
	CustomVocabulary []VocabularyEntry

	// BillingRules lists the billing/coding rule documents to embed
	// verbatim, usually billing.Default() merged with clinic-defined rules.
	BillingRules []billing.Rule
}
