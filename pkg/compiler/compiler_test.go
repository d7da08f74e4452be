package compiler_test

import (
	"strings"
	"testing"

	"github.com/emberhealth/notekit/pkg/billing"
	"github.com/emberhealth/notekit/pkg/compiler"
	"github.com/emberhealth/notekit/pkg/notes"
)

// structureSections lists the sub-section names each built-in structure
// must surface in its compiled base prompt.
var structureSections = map[notes.Structure][]string{
	notes.StructureSOAP:         {"Subjective:", "Objective:", "Assessment:", "Plan:"},
	notes.StructureSOAPCombined: {"Subjective:", "Objective:", "Assessment & Plan:"},
	notes.StructureDAP:          {"Data:", "Assessment:", "Plan:"},
	notes.StructureBIRP:         {"Behavior:", "Intervention:", "Response:", "Plan:"},
}

// --- Structures and formats ---

func TestCompile_AllStructuresAndFormats(t *testing.T) {
	t.Parallel()

	for structure, sections := range structureSections {
		for _, format := range []notes.OutputFormat{notes.FormatParagraph, notes.FormatBulletPoints} {
			out := compiler.Compile(notes.CompilationInput{Structure: structure, OutputFormat: format})

			for _, section := range sections {
				if !strings.Contains(out, section) {
					t.Errorf("%s/%s: output missing section %q", structure, format, section)
				}
			}

			wantDirective := "narrative paragraphs"
			if format == notes.FormatBulletPoints {
				wantDirective = "bullet points"
			}
			if !strings.Contains(out, wantDirective) {
				t.Errorf("%s/%s: output missing format directive %q", structure, format, wantDirective)
			}
		}
	}
}

func TestCompile_UnknownStructure(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{Structure: "GIRP"})
	if !strings.Contains(out, "GIRP") {
		t.Errorf("output does not name the unknown structure verbatim:\n%s", out)
	}
}

// --- Section omission ---

func TestCompile_MinimalInputOmitsOptionalSections(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{Structure: notes.StructureSOAP})
	lower := strings.ToLower(out)

	for _, absent := range []string{"macro phrases", "custom vocabulary", "additional specific instructions", "billing and coding rules", "icd-10 codes", "specialty template"} {
		if strings.Contains(lower, absent) {
			t.Errorf("minimal input produced section %q:\n%s", absent, out)
		}
	}
	if out == "" {
		t.Fatal("minimal input produced empty string")
	}
}

func TestCompile_WhitespaceCustomInstructionsOmitted(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure:          notes.StructureSOAP,
		CustomInstructions: "   \n\t  ",
	})
	if strings.Contains(out, "Additional Specific Instructions") {
		t.Error("whitespace-only custom instructions produced a section header")
	}
}

// --- Optional sections ---

func TestCompile_ShowDiagnoses(t *testing.T) {
	t.Parallel()

	with := compiler.Compile(notes.CompilationInput{Structure: notes.StructureSOAP, ShowDiagnoses: true})
	if !strings.Contains(with, "ICD-10") {
		t.Error("ShowDiagnoses=true output missing ICD-10 directive")
	}
	without := compiler.Compile(notes.CompilationInput{Structure: notes.StructureSOAP})
	if strings.Contains(without, "ICD-10") {
		t.Error("ShowDiagnoses=false output contains ICD-10 directive")
	}
}

func TestCompile_CustomInstructionsVerbatim(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure:          notes.StructureDAP,
		CustomInstructions: "  Always document time-in and time-out.  ",
	})
	if !strings.Contains(out, "Additional Specific Instructions:\nAlways document time-in and time-out.") {
		t.Errorf("custom instructions not appended trimmed and verbatim:\n%s", out)
	}
}

func TestCompile_MacroLines(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure: notes.StructureSOAP,
		MacroPhrases: []notes.MacroPhrase{
			{Trigger: "pe normal", Phrase: "physical exam normal"},
			{Trigger: "soloflag"},
		},
	})

	if !strings.Contains(out, "If trigger 'pe normal' is typed, expand to: 'physical exam normal'") {
		t.Errorf("structured macro line missing:\n%s", out)
	}
	// A legacy entry with no expansion is emitted verbatim, not wrapped in
	// the trigger template.
	if !strings.Contains(out, "- soloflag") {
		t.Errorf("legacy macro not emitted verbatim:\n%s", out)
	}
	if strings.Contains(out, "If trigger 'soloflag'") {
		t.Errorf("legacy macro wrongly wrapped in trigger template:\n%s", out)
	}
}

func TestCompile_VocabularyLines(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure: notes.StructureSOAP,
		CustomVocabulary: []notes.VocabularyEntry{
			{Term: "acetaminophen", Intensifier: 1},
			{Term: "Zoloft", Intensifier: 2, SoundsLike: []string{"zoll off", "so loft"}},
		},
	})

	if !strings.Contains(out, "Term: 'acetaminophen'") {
		t.Errorf("vocabulary term line missing:\n%s", out)
	}
	if !strings.Contains(out, "Term: 'Zoloft' (may sound like: zoll off, so loft)") {
		t.Errorf("sound-alike hint missing or malformed:\n%s", out)
	}
	// No sound-alike suffix when the entry declares none.
	if strings.Contains(out, "acetaminophen' (may sound like") {
		t.Errorf("unexpected sound-alike suffix on plain term:\n%s", out)
	}
}

func TestCompile_BillingRulesVerbatim(t *testing.T) {
	t.Parallel()

	rules := billing.Default().Merge(billing.Rule{
		Name: "Clinic Rule",
		Text: "Bill 99213 as the default established-visit level.",
	}).Rules()

	out := compiler.Compile(notes.CompilationInput{
		Structure:    notes.StructureSOAP,
		BillingRules: rules,
	})

	if !strings.Contains(out, "Billing and Coding Rules:") {
		t.Fatalf("billing section missing:\n%s", out[:200])
	}
	for _, r := range rules {
		if !strings.Contains(out, r.Text) {
			t.Errorf("rule %q not embedded verbatim", r.Name)
		}
	}
	// Custom rules follow built-ins.
	if strings.Index(out, "Clinic Rule") < strings.Index(out, "E/M Office Visit Level Selection") {
		t.Error("custom billing rule appears before built-in rules")
	}
}

func TestCompile_TemplateInstructions(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure:            notes.StructureSOAP,
		TemplateInstructions: "Record range of motion in degrees.",
	})
	if !strings.Contains(out, "Specialty template guidance:\nRecord range of motion in degrees.") {
		t.Errorf("template instructions missing:\n%s", out)
	}
}

// --- Fixed properties ---

func TestCompile_SectionOrder(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{
		Structure:          notes.StructureSOAP,
		OutputFormat:       notes.FormatBulletPoints,
		ShowDiagnoses:      true,
		CustomInstructions: "Use metric units.",
		MacroPhrases:       []notes.MacroPhrase{{Trigger: "t", Phrase: "p"}},
		CustomVocabulary:   []notes.VocabularyEntry{{Term: "metformin"}},
	})

	markers := []string{
		"Subjective:",
		"bullet points",
		"ICD-10",
		"Additional Specific Instructions:",
		"Macro Phrases:",
		"Custom Vocabulary:",
		"clinical accuracy",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		if idx < 0 {
			t.Fatalf("marker %q missing from output:\n%s", m, out)
		}
		if idx < last {
			t.Errorf("marker %q out of order", m)
		}
		last = idx
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	input := notes.CompilationInput{
		Structure:        notes.StructureBIRP,
		OutputFormat:     notes.FormatParagraph,
		MacroPhrases:     []notes.MacroPhrase{{Trigger: "a", Phrase: "b"}},
		CustomVocabulary: []notes.VocabularyEntry{{Term: "sertraline", SoundsLike: []string{"sir trailing"}}},
	}
	if compiler.Compile(input) != compiler.Compile(input) {
		t.Error("Compile is not byte-identical for identical input")
	}
}

func TestCompile_ClosingDirectiveAlwaysLast(t *testing.T) {
	t.Parallel()

	out := compiler.Compile(notes.CompilationInput{Structure: notes.StructureDAP})
	if !strings.HasSuffix(out, "clinical terminology is necessary.") {
		t.Errorf("output does not end with the closing directive:\n…%s", out[len(out)-80:])
	}
}
