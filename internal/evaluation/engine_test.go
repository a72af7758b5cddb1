package evaluation_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/evaluation"
	"github.com/Y3454R/vsp-mvp/internal/session"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm/mock"
)

const judgmentJSON = `{
	"rapport_building": 82,
	"active_listening_empathy": 74.5,
	"psychiatric_history": 68,
	"risk_assessment": 91,
	"biopsychosocial_assessment": 70,
	"communication_skills": 85,
	"cultural_sensitivity": 77,
	"interview_structure": 66,
	"overall_score": 76.7,
	"strengths": ["warm opening", "asked about suicide risk"],
	"areas_for_improvement": ["rushed the social history"],
	"feedback": "A solid interview with room to slow down."
}`

func testRepository(t *testing.T) *casefile.Repository {
	t.Helper()
	dir := t.TempDir()
	record := `{
		"id": "case_001",
		"patient_name": "Li Wei",
		"age": 34,
		"gender": "male",
		"chief_complaint": "I can't sleep.",
		"condition": "Major depressive disorder",
		"symptoms": "Insomnia, low mood."
	}`
	if err := os.WriteFile(filepath.Join(dir, "case_001.json"), []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}
	return casefile.NewRepository(dir)
}

func newEngine(t *testing.T, provider llm.Provider) *evaluation.Engine {
	t.Helper()
	e, err := evaluation.NewEngine(evaluation.Config{
		Cases:       testRepository(t),
		Provider:    provider,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func sampleTranscript() []session.Turn {
	return []session.Turn{
		{Role: session.RoleStudent, Content: "How has your sleep been?"},
		{Role: session.RolePatient, Content: "I barely sleep at all."},
		{Role: session.RoleStudent, Content: "Thank you for telling me about your sleep."},
	}
}

func TestEvaluate_ValidJudgment(t *testing.T) {
	t.Parallel()
	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: judgmentJSON},
	}
	e := newEngine(t, provider)

	r := e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())

	if r.Error != "" {
		t.Fatalf("Error = %q, want empty", r.Error)
	}
	if r.SessionID != "sess-1" || r.CaseID != "case_001" {
		t.Errorf("identifiers = %q/%q", r.SessionID, r.CaseID)
	}
	if r.Scores.RapportBuilding != 82 {
		t.Errorf("rapport_building = %v, want 82", r.Scores.RapportBuilding)
	}
	if r.Scores.OverallScore != 76.7 {
		t.Errorf("overall_score = %v, want 76.7", r.Scores.OverallScore)
	}
	if len(r.Strengths) != 2 || r.Strengths[0] != "warm opening" {
		t.Errorf("strengths = %v", r.Strengths)
	}
	if len(r.AreasForImprovement) != 1 {
		t.Errorf("areas_for_improvement = %v", r.AreasForImprovement)
	}
	if r.Feedback != "A solid interview with room to slow down." {
		t.Errorf("feedback = %q", r.Feedback)
	}
	if r.Metrics == nil {
		t.Fatal("metrics missing from successful result")
	}
	if r.Metrics.TurnNumber != 3 {
		t.Errorf("turn_number = %d, want 3", r.Metrics.TurnNumber)
	}
}

func TestEvaluate_FencedJudgmentParsesIdentically(t *testing.T) {
	t.Parallel()
	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "```json\n" + judgmentJSON + "\n```"},
	}
	e := newEngine(t, provider)

	r := e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())
	if r.Error != "" {
		t.Fatalf("Error = %q, want empty for fenced JSON", r.Error)
	}
	if r.Scores.OverallScore != 76.7 {
		t.Errorf("overall_score = %v, want 76.7", r.Scores.OverallScore)
	}
}

func TestEvaluate_UnparseableOutputDegrades(t *testing.T) {
	t.Parallel()
	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "The student did quite well overall, I'd say 8/10."},
	}
	e := newEngine(t, provider)

	r := e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())

	if r.Error == "" {
		t.Fatal("Error should be set for unparseable output")
	}
	if r.Scores != (evaluation.Scores{}) {
		t.Errorf("scores = %+v, want all zero", r.Scores)
	}
	if r.Feedback != "Error evaluating conversation" {
		t.Errorf("feedback = %q, want the degraded message", r.Feedback)
	}
	// Metrics survive a parse failure: they never depend on the model.
	if r.Metrics == nil {
		t.Fatal("metrics missing from degraded result")
	}
	if r.Metrics.TurnNumber != 3 {
		t.Errorf("turn_number = %d, want 3", r.Metrics.TurnNumber)
	}
	if r.Strengths == nil || r.AreasForImprovement == nil {
		t.Error("list fields must be empty slices, not nil")
	}
}

func TestEvaluate_UnknownCaseDegrades(t *testing.T) {
	t.Parallel()
	e := newEngine(t, &mock.Provider{})

	r := e.Evaluate(context.Background(), "sess-1", "no_such_case", sampleTranscript())

	if r.Error == "" {
		t.Fatal("Error should be set for an unknown case")
	}
	if !strings.Contains(r.Error, "not found") {
		t.Errorf("Error = %q, should mention the missing case", r.Error)
	}
	if r.Feedback != "" {
		t.Errorf("feedback = %q, want empty for non-parse failures", r.Feedback)
	}
	if r.Scores != (evaluation.Scores{}) {
		t.Errorf("scores = %+v, want all zero", r.Scores)
	}
}

func TestEvaluate_ProviderFailureDegrades(t *testing.T) {
	t.Parallel()
	provider := &mock.Provider{CompleteErr: errors.New("backend down")}
	e := newEngine(t, provider)

	r := e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())

	if !strings.Contains(r.Error, "backend down") {
		t.Errorf("Error = %q, should carry the provider failure", r.Error)
	}
	if r.Feedback != "" {
		t.Errorf("feedback = %q, want empty for non-parse failures", r.Feedback)
	}
}

func TestEvaluate_MissingScoreFieldsDecodeToZero(t *testing.T) {
	t.Parallel()
	partial := `{"overall_score": 50, "feedback": "Partial judgment."}`
	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: partial},
	}
	e := newEngine(t, provider)

	r := e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())

	if r.Error != "" {
		t.Fatalf("Error = %q, want empty — partial JSON is repaired, not rejected", r.Error)
	}
	if r.Scores.OverallScore != 50 {
		t.Errorf("overall_score = %v, want 50", r.Scores.OverallScore)
	}
	if r.Scores.RapportBuilding != 0 {
		t.Errorf("rapport_building = %v, want 0 for an absent field", r.Scores.RapportBuilding)
	}
	if r.Strengths == nil || len(r.Strengths) != 0 {
		t.Errorf("strengths = %#v, want empty slice", r.Strengths)
	}
}

func TestEvaluate_PromptCarriesCaseAndTranscript(t *testing.T) {
	t.Parallel()
	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: judgmentJSON},
	}
	e := newEngine(t, provider)

	e.Evaluate(context.Background(), "sess-1", "case_001", sampleTranscript())

	calls := provider.Calls()
	if len(calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(calls))
	}
	prompt := calls[0].Req.Messages[0].Content
	for _, want := range []string{
		"Li Wei",
		"Major depressive disorder",
		"Student: How has your sleep been?",
		"Patient: I barely sleep at all.",
		"rapport_building",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("evaluation prompt missing %q", want)
		}
	}
}

func TestNewEngine_RequiresDependencies(t *testing.T) {
	t.Parallel()
	if _, err := evaluation.NewEngine(evaluation.Config{Provider: &mock.Provider{}}); err == nil {
		t.Error("expected error for nil Cases")
	}
	if _, err := evaluation.NewEngine(evaluation.Config{Cases: casefile.NewRepository("x")}); err == nil {
		t.Error("expected error for nil Provider")
	}
}
