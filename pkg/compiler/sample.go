package compiler

import (
	"fmt"

	"github.com/emberhealth/notekit/pkg/notes"
)

// sampleKey identifies one canonical example note.
type sampleKey struct {
	structure notes.Structure
	format    notes.OutputFormat
}

// Sample returns the canonical example note for the given structure and
// format pair. The table is fixed (four structures × two formats); unknown
// pairs return a deterministic "no sample available" message. Sample never
// returns an empty string and never fails.
//
// Samples are UI preview material only — they are not sent to the model.
func Sample(structure notes.Structure, format notes.OutputFormat) string {
	if s, ok := samples[sampleKey{structure, format}]; ok {
		return s
	}
	return fmt.Sprintf("No sample available for %s (%s).", string(structure), string(format))
}

var samples = map[sampleKey]string{
	{notes.StructureSOAP, notes.FormatParagraph}: `SUBJECTIVE: The patient is a 54-year-old male presenting with three days of right knee pain after a fall while hiking. He describes the pain as 6/10, worse with stairs, improved with rest and ibuprofen. He denies locking, giving way, or prior knee surgery.

OBJECTIVE: Vital signs stable. Right knee with mild effusion, tenderness along the medial joint line, full extension, flexion limited to 110 degrees by pain. Negative anterior drawer, negative Lachman. Gait antalgic.

ASSESSMENT: Acute medial meniscus strain of the right knee, without evidence of ligamentous instability.

PLAN: RICE protocol reviewed. Naproxen 500 mg twice daily with food for 10 days. Knee radiographs today to rule out fracture. Follow up in two weeks; MRI if not improving.`,

	{notes.StructureSOAP, notes.FormatBulletPoints}: `SUBJECTIVE:
- 54-year-old male, right knee pain x3 days after fall while hiking
- Pain 6/10, worse with stairs, better with rest and ibuprofen
- Denies locking, giving way, prior knee surgery

OBJECTIVE:
- Vitals stable
- Right knee: mild effusion, medial joint line tenderness
- Flexion limited to 110 degrees; negative drawer and Lachman
- Antalgic gait

ASSESSMENT:
- Acute medial meniscus strain, right knee
- No ligamentous instability

PLAN:
- RICE protocol
- Naproxen 500 mg BID with food x10 days
- Knee radiographs today
- Follow up 2 weeks; MRI if not improving`,

	{notes.StructureSOAPCombined, notes.FormatParagraph}: `SUBJECTIVE: The patient is a 61-year-old female returning for follow-up of type 2 diabetes and hypertension. She reports good medication adherence, home glucose readings of 110-140 mg/dL fasting, and no hypoglycemic episodes. She walks 30 minutes most days.

OBJECTIVE: Blood pressure 132/78, pulse 72, weight down 2 kg since last visit. Monofilament exam intact bilaterally. Most recent A1c 7.1%, down from 7.8%.

ASSESSMENT & PLAN: Type 2 diabetes, improving control on current regimen — continue metformin 1000 mg twice daily, repeat A1c in three months, annual eye exam referral placed. Hypertension, at goal on lisinopril 20 mg daily — continue current dose, recheck basic metabolic panel at next visit. Preventive care: influenza vaccine administered today.`,

	{notes.StructureSOAPCombined, notes.FormatBulletPoints}: `SUBJECTIVE:
- 61-year-old female, follow-up of type 2 diabetes and hypertension
- Good adherence; fasting glucose 110-140; no hypoglycemia
- Walking 30 minutes most days

OBJECTIVE:
- BP 132/78, pulse 72, weight down 2 kg
- Monofilament intact bilaterally
- A1c 7.1% (prior 7.8%)

ASSESSMENT & PLAN:
- Type 2 diabetes, improving: continue metformin 1000 mg BID; repeat A1c in 3 months; eye exam referral
- Hypertension, at goal: continue lisinopril 20 mg daily; BMP at next visit
- Preventive: influenza vaccine given today`,

	{notes.StructureDAP, notes.FormatParagraph}: `DATA: The client attended the scheduled 50-minute session on time. She reported two panic episodes this week, both at work, each resolving within ten minutes using the breathing techniques practiced in session. Sleep has improved to six hours nightly. Affect was congruent, speech normal in rate and tone, and she was engaged throughout.

ASSESSMENT: Panic symptoms are decreasing in frequency and duration, and the client is applying coping skills independently. Progress toward the treatment goal of reducing panic episodes to fewer than one per week is on track.

PLAN: Continue weekly cognitive behavioral therapy with interoceptive exposure. Client will keep a panic log and practice paced breathing daily. Next session scheduled in one week.`,

	{notes.StructureDAP, notes.FormatBulletPoints}: `DATA:
- Attended 50-minute session on time
- Two panic episodes this week, both at work, resolved within 10 minutes using breathing techniques
- Sleep improved to 6 hours nightly
- Affect congruent; engaged throughout

ASSESSMENT:
- Panic frequency and duration decreasing
- Applying coping skills independently
- On track toward goal of fewer than one episode per week

PLAN:
- Continue weekly CBT with interoceptive exposure
- Daily paced-breathing practice; maintain panic log
- Next session in one week`,

	{notes.StructureBIRP, notes.FormatParagraph}: `BEHAVIOR: The client arrived on time and appeared well groomed. He reported increased irritability at home and rated his mood 4/10. He made appropriate eye contact and was cooperative, though he became tearful when discussing his recent job loss.

INTERVENTION: The therapist used cognitive restructuring to examine automatic thoughts around the job loss and guided the client through identifying evidence for and against the thought "I will not find work again." Behavioral activation planning was introduced, scheduling two pleasant activities for the coming week.

RESPONSE: The client engaged with the restructuring exercise and generated two alternative thoughts independently. He expressed willingness to attempt the scheduled activities and reported his distress decreasing from 7/10 to 4/10 during the session.

PLAN: Continue weekly sessions focusing on cognitive restructuring and behavioral activation. The client will complete a thought record after any episode of irritability. Next appointment in one week.`,

	{notes.StructureBIRP, notes.FormatBulletPoints}: `BEHAVIOR:
- On time, well groomed; mood rated 4/10
- Increased irritability at home; tearful discussing job loss
- Cooperative with appropriate eye contact

INTERVENTION:
- Cognitive restructuring of automatic thoughts around job loss
- Evidence for/against "I will not find work again"
- Introduced behavioral activation; scheduled two pleasant activities

RESPONSE:
- Generated two alternative thoughts independently
- Willing to attempt scheduled activities
- In-session distress decreased from 7/10 to 4/10

PLAN:
- Continue weekly sessions: restructuring and behavioral activation
- Thought record after irritability episodes
- Next appointment in one week`,
}
