package interview

import (
	"fmt"
	"strings"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
)

// FormatPersonaPrompt renders the system prompt that grounds the language
// model in one patient persona. Case fields are interpolated literally —
// they are trusted authoring content, not user input — so a case field must
// not itself contain prompt-template syntax.
//
// The formatter is pure: no I/O, no side effects, safe for concurrent use.
// Empty case fields are omitted rather than rendering as empty sections.
func FormatPersonaPrompt(c *casefile.Case) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, a %d-year-old %s attending a psychiatric interview conducted by a medical student.",
		c.PatientName, c.Age, c.Gender)

	if c.ChiefComplaint != "" {
		sb.WriteString("\n\n## Chief Complaint\n")
		sb.WriteString(c.ChiefComplaint)
	}

	if c.Condition != "" {
		sb.WriteString("\n\n## Your Condition\n")
		fmt.Fprintf(&sb, "You are experiencing %s. You do not know your diagnosis — you only know how you feel.", c.Condition)
	}

	if c.Background != "" {
		sb.WriteString("\n\n## Your Background\n")
		sb.WriteString(c.Background)
	}

	if c.Symptoms != "" {
		sb.WriteString("\n\n## Your Symptoms\n")
		sb.WriteString(c.Symptoms)
	}

	if c.MedicalHistory != "" {
		sb.WriteString("\n\n## Your Medical History\n")
		sb.WriteString(c.MedicalHistory)
	}

	sb.WriteString("\n\n## How To Behave\n")
	sb.WriteString(strings.TrimSpace(`
- Stay in character as the patient at all times. Never break role or mention being an AI.
- Answer only what the student asks. Do not volunteer your whole history unprompted.
- Use everyday language to describe how you feel; never use clinical terminology about yourself.
- Show emotion consistent with your condition. Hesitate on difficult topics.
- If the student is warm and empathetic, open up gradually. If they are cold or rushed, give short, guarded answers.
- Never state or guess your own diagnosis.`))

	return sb.String()
}
