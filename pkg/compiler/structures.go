package compiler

import (
	"fmt"

	"github.com/emberhealth/notekit/pkg/notes"
)

// Base prompt blocks per note structure. Each block names the structure's
// required sub-sections with a one-line purpose description. The texts are
// fixed program data — clinician customisation happens through template
// instructions and custom instructions, never by editing these.
const (
	soapPrompt = `You are a medical scribe assistant. Generate a clinical note in SOAP format with the following sections:

Subjective: The patient's reported symptoms, concerns, and relevant history in their own words.
Objective: Measurable findings from the physical examination, vital signs, and test results.
Assessment: The clinician's diagnostic impression and clinical reasoning for each problem addressed.
Plan: Treatment decisions, medications, orders, referrals, patient education, and follow-up.`

	soapCombinedPrompt = `You are a medical scribe assistant. Generate a clinical note in SOAP format with a combined Assessment & Plan, using the following sections:

Subjective: The patient's reported symptoms, concerns, and relevant history in their own words.
Objective: Measurable findings from the physical examination, vital signs, and test results.
Assessment & Plan: For each problem addressed, the diagnostic impression followed immediately by its treatment plan, orders, and follow-up.`

	dapPrompt = `You are a medical scribe assistant. Generate a clinical note in DAP format with the following sections:

Data: All information gathered during the session, including the patient's statements, observed behavior, and clinical findings.
Assessment: The clinician's interpretation of the data and current clinical status.
Plan: Interventions, treatment adjustments, homework, and the schedule for the next session.`

	birpPrompt = `You are a medical scribe assistant. Generate a clinical note in BIRP format with the following sections:

Behavior: The patient's presentation, statements, and observed behavior during the session.
Intervention: The specific therapeutic interventions and techniques the clinician applied.
Response: How the patient responded to each intervention during the session.
Plan: The treatment direction, assigned work, and timing of the next contact.`
)

// basePrompt returns the prompt block for the given structure. Unrecognised
// structures produce a generic block naming the structure verbatim — the
// model is trusted to know common documentation formats, and compilation
// must never fail on an unknown value.
func basePrompt(s notes.Structure) string {
	switch s {
	case notes.StructureSOAP:
		return soapPrompt
	case notes.StructureSOAPCombined:
		return soapCombinedPrompt
	case notes.StructureDAP:
		return dapPrompt
	case notes.StructureBIRP:
		return birpPrompt
	default:
		return fmt.Sprintf(
			"You are a medical scribe assistant. Generate a clinical note using the %q documentation structure, including all sections customary for that format.",
			string(s),
		)
	}
}
