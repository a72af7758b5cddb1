// Package evaluation implements the rubric-based judgment of a student's
// interview technique.
//
// The engine renders the case and transcript into an evaluation prompt, asks
// the language model for a structured nine-dimension rubric judgment, repairs
// or degrades malformed output, and merges in the descriptive statistics from
// the metrics package.
//
// The engine never returns an error across its boundary: every failure —
// unknown case, model outage, unparseable output — produces a zero-scored
// [Result] with the Error field set. Evaluation is a best-effort advisory
// feature; a failed evaluation must not break the student's session.
package evaluation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/metrics"
	"github.com/Y3454R/vsp-mvp/internal/session"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
)

// degradedFeedback is the feedback text returned when the model's judgment
// cannot be parsed.
const degradedFeedback = "Error evaluating conversation"

// Config holds the dependencies for an [Engine].
type Config struct {
	// Cases resolves case IDs to case records.
	Cases *casefile.Repository

	// Provider is the language model backend acting as the judge.
	Provider llm.Provider

	// Temperature is passed through to the judgment completion.
	Temperature float64
}

// Engine evaluates interview transcripts. Safe for concurrent use.
type Engine struct {
	cases       *casefile.Repository
	provider    llm.Provider
	temperature float64
}

// NewEngine creates an evaluation [Engine] from the given configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Cases == nil {
		return nil, fmt.Errorf("evaluation: Cases must not be nil")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("evaluation: Provider must not be nil")
	}
	return &Engine{
		cases:       cfg.Cases,
		provider:    cfg.Provider,
		temperature: cfg.Temperature,
	}, nil
}

// Evaluate judges the given transcript against the case's rubric.
//
// The rubric judgment (one model round-trip) and the conversation metrics are
// computed concurrently over the same transcript snapshot; they are fully
// independent. Metrics are attached on success and on parse failure alike —
// only the rubric portion degrades.
func (e *Engine) Evaluate(ctx context.Context, sessionID, caseID string, turns []session.Turn) Result {
	c, err := e.cases.Get(caseID)
	if err != nil {
		return e.degraded(sessionID, caseID, "", err)
	}

	var (
		raw string
		m   metrics.ConversationMetrics
		eg  errgroup.Group
	)

	eg.Go(func() error {
		resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
			Messages:    []llm.Message{{Role: "user", Content: buildPrompt(c, turns)}},
			Temperature: e.temperature,
		})
		if err != nil {
			return fmt.Errorf("evaluation: judgment completion: %w", err)
		}
		raw = resp.Content
		return nil
	})

	eg.Go(func() error {
		m = metrics.Compute(turns)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return e.degraded(sessionID, caseID, "", err)
	}

	j, err := parseJudgment(raw)
	if err != nil {
		result := e.degraded(sessionID, caseID, degradedFeedback, err)
		result.Metrics = &m
		return result
	}

	return Result{
		SessionID: sessionID,
		CaseID:    caseID,
		Scores: Scores{
			RapportBuilding:           j.RapportBuilding,
			ActiveListeningEmpathy:    j.ActiveListeningEmpathy,
			PsychiatricHistory:        j.PsychiatricHistory,
			RiskAssessment:            j.RiskAssessment,
			BiopsychosocialAssessment: j.BiopsychosocialAssessment,
			CommunicationSkills:       j.CommunicationSkills,
			CulturalSensitivity:       j.CulturalSensitivity,
			InterviewStructure:        j.InterviewStructure,
			OverallScore:              j.OverallScore,
		},
		Strengths:           orEmpty(j.Strengths),
		AreasForImprovement: orEmpty(j.AreasForImprovement),
		Feedback:            j.Feedback,
		Metrics:             &m,
	}
}

// degraded builds the zero-scored result returned when any step of the
// evaluation path fails.
func (e *Engine) degraded(sessionID, caseID, feedback string, err error) Result {
	return Result{
		SessionID:           sessionID,
		CaseID:              caseID,
		Scores:              Scores{},
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Feedback:            feedback,
		Error:               err.Error(),
	}
}

// orEmpty replaces a nil slice with an empty one so JSON renders [] not null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
