package evaluation

import (
	"fmt"
	"strings"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/session"
)

// rubricInstructions lists the nine rubric dimensions and the exact JSON
// shape the model must return. Kept as one literal so the prompt and the
// parser stay in sync by inspection.
const rubricInstructions = `You are an experienced psychiatric educator evaluating a medical student's patient interview.

Score the student's performance on each dimension from 0 to 100:
- rapport_building: establishing trust and a working alliance with the patient
- active_listening_empathy: reflecting, validating, and responding to emotional cues
- psychiatric_history: completeness of the psychiatric history taken
- risk_assessment: screening for suicidality, self-harm, and harm to others
- biopsychosocial_assessment: covering biological, psychological, and social factors
- communication_skills: clarity, pacing, and appropriate use of open questions
- cultural_sensitivity: respect for the patient's background and circumstances
- interview_structure: logical flow with an opening, body, and closing
- overall_score: your overall impression of the interview

Respond with ONLY a JSON object, no prose before or after, in exactly this shape:
{
  "rapport_building": <number>,
  "active_listening_empathy": <number>,
  "psychiatric_history": <number>,
  "risk_assessment": <number>,
  "biopsychosocial_assessment": <number>,
  "communication_skills": <number>,
  "cultural_sensitivity": <number>,
  "interview_structure": <number>,
  "overall_score": <number>,
  "strengths": ["<string>", ...],
  "areas_for_improvement": ["<string>", ...],
  "feedback": "<string>"
}`

// CaseSummary renders the compact case description included in the
// evaluation prompt so the judge knows what the interview should have
// uncovered.
func CaseSummary(c *casefile.Case) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Patient: %s, %d year old %s\n", c.PatientName, c.Age, c.Gender)
	fmt.Fprintf(&sb, "Condition: %s\n", c.Condition)
	fmt.Fprintf(&sb, "Chief Complaint: %s\n", c.ChiefComplaint)
	fmt.Fprintf(&sb, "Key Symptoms: %s", c.Symptoms)
	return sb.String()
}

// FormatTranscript renders the conversation with student turns labelled
// distinctly from patient turns.
func FormatTranscript(turns []session.Turn) string {
	var sb strings.Builder
	for _, t := range turns {
		switch t.Role {
		case session.RoleStudent:
			fmt.Fprintf(&sb, "Student: %s\n\n", t.Content)
		case session.RolePatient:
			fmt.Fprintf(&sb, "Patient: %s\n\n", t.Content)
		}
	}
	return sb.String()
}

// buildPrompt assembles the full evaluation prompt from the rubric
// instructions, the case summary, and the rendered transcript.
func buildPrompt(c *casefile.Case, turns []session.Turn) string {
	var sb strings.Builder
	sb.WriteString(rubricInstructions)
	sb.WriteString("\n\n## Case\n")
	sb.WriteString(CaseSummary(c))
	sb.WriteString("\n\n## Interview Transcript\n")
	sb.WriteString(FormatTranscript(turns))
	return sb.String()
}
