package compiler_test

import (
	"strings"
	"testing"

	"github.com/emberhealth/notekit/pkg/compiler"
	"github.com/emberhealth/notekit/pkg/notes"
)

func TestSample_AllPairsPresent(t *testing.T) {
	t.Parallel()

	structures := []notes.Structure{
		notes.StructureSOAP, notes.StructureSOAPCombined, notes.StructureDAP, notes.StructureBIRP,
	}
	formats := []notes.OutputFormat{notes.FormatParagraph, notes.FormatBulletPoints}

	for _, s := range structures {
		for _, f := range formats {
			got := compiler.Sample(s, f)
			if got == "" {
				t.Errorf("Sample(%s, %s) is empty", s, f)
			}
			if strings.Contains(got, "No sample available") {
				t.Errorf("Sample(%s, %s) fell through to the fallback message", s, f)
			}
		}
	}
}

func TestSample_FormatsDiffer(t *testing.T) {
	t.Parallel()

	para := compiler.Sample(notes.StructureSOAP, notes.FormatParagraph)
	bullets := compiler.Sample(notes.StructureSOAP, notes.FormatBulletPoints)
	if para == bullets {
		t.Error("paragraph and bullet-point samples are identical")
	}
}

func TestSample_UnknownPair(t *testing.T) {
	t.Parallel()

	got := compiler.Sample("GIRP", notes.FormatParagraph)
	want := "No sample available for GIRP (paragraph)."
	if got != want {
		t.Errorf("Sample=%q, want %q", got, want)
	}

	// Deterministic: same message every call.
	if again := compiler.Sample("GIRP", notes.FormatParagraph); again != got {
		t.Error("fallback message is not deterministic")
	}
}

func TestSample_StructureSectionsAppear(t *testing.T) {
	t.Parallel()

	got := compiler.Sample(notes.StructureBIRP, notes.FormatBulletPoints)
	for _, section := range []string{"BEHAVIOR:", "INTERVENTION:", "RESPONSE:", "PLAN:"} {
		if !strings.Contains(got, section) {
			t.Errorf("BIRP sample missing %q", section)
		}
	}
}
