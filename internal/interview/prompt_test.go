package interview_test

import (
	"strings"
	"testing"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/interview"
)

func TestFormatPersonaPrompt_OmitsEmptySections(t *testing.T) {
	t.Parallel()
	c := &casefile.Case{
		ID:          "case_min",
		PatientName: "Maria Santos",
		Age:         27,
		Gender:      "female",
	}
	prompt := interview.FormatPersonaPrompt(c)

	if !strings.Contains(prompt, "You are Maria Santos, a 27-year-old female") {
		t.Errorf("prompt missing persona opener:\n%s", prompt)
	}
	for _, heading := range []string{"## Chief Complaint", "## Your Condition", "## Your Background", "## Your Symptoms", "## Your Medical History"} {
		if strings.Contains(prompt, heading) {
			t.Errorf("prompt contains %q despite the field being empty", heading)
		}
	}
	// The behaviour rules always render.
	if !strings.Contains(prompt, "## How To Behave") {
		t.Error("prompt missing behaviour rules")
	}
	if !strings.Contains(prompt, "Never state or guess your own diagnosis.") {
		t.Error("prompt missing diagnosis rule")
	}
}

func TestFormatPersonaPrompt_DoesNotRevealDiagnosisKnowledge(t *testing.T) {
	t.Parallel()
	c := &casefile.Case{
		ID:          "case_cond",
		PatientName: "Li Wei",
		Age:         34,
		Gender:      "male",
		Condition:   "major depressive disorder",
	}
	prompt := interview.FormatPersonaPrompt(c)
	if !strings.Contains(prompt, "You do not know your diagnosis") {
		t.Error("condition section must instruct the model that the patient is unaware of the diagnosis")
	}
}
