// Package metrics computes descriptive, non-scoring statistics over an
// interview transcript.
//
// The four statistics characterise the student's interviewing style and are
// attached to evaluation results for context; none of them contributes to the
// rubric score. All functions are pure and deterministic over their input —
// no shared state, safe to compute concurrently.
//
// The emotional tendency statistic is a fixed-vocabulary keyword count, not a
// learned sentiment model.
package metrics

import (
	"math"
	"regexp"
	"strings"

	"github.com/Y3454R/vsp-mvp/internal/session"
)

// wordPattern tokenises lower-cased text into alphanumeric words.
var wordPattern = regexp.MustCompile(`\w+`)

// ConversationMetrics holds the four transcript statistics.
type ConversationMetrics struct {
	// InformationDensity is the fraction of the student's word tokens that are
	// clinical vocabulary, in [0, 1], rounded to 3 decimals.
	InformationDensity float64 `json:"information_density"`

	// EmotionalTendency scores the warmth of the student's wording in [-1, 1],
	// rounded to 3 decimals. 0 means neutral (or no emotionally loaded words).
	EmotionalTendency float64 `json:"emotional_tendency"`

	// ResponseLength is the mean word count per student turn, rounded to
	// 2 decimals.
	ResponseLength float64 `json:"response_length"`

	// TurnNumber is the total number of turns, counting every role.
	TurnNumber int `json:"turn_number"`
}

// Compute derives all four statistics from a transcript snapshot.
func Compute(turns []session.Turn) ConversationMetrics {
	return ConversationMetrics{
		InformationDensity: InformationDensity(turns),
		EmotionalTendency:  EmotionalTendency(turns),
		ResponseLength:     ResponseLength(turns),
		TurnNumber:         TurnNumber(turns),
	}
}

// InformationDensity returns the fraction of student word tokens that exactly
// match the clinical vocabulary. Every occurrence counts; a student who
// repeats "sleep" three times produces three hits. Returns 0 when the student
// produced no tokens at all.
func InformationDensity(turns []session.Turn) float64 {
	totalWords := 0
	clinicalHits := 0

	for _, t := range turns {
		if t.Role != session.RoleStudent {
			continue
		}
		words := wordPattern.FindAllString(strings.ToLower(t.Content), -1)
		totalWords += len(words)
		for _, w := range words {
			if _, ok := clinicalTerms[w]; ok {
				clinicalHits++
			}
		}
	}

	if totalWords == 0 {
		return 0.0
	}
	return round3(float64(clinicalHits) / float64(totalWords))
}

// EmotionalTendency returns (positive − negative) / (positive + negative)
// where hits are counted over the set of distinct student word tokens: a
// vocabulary term repeated within or across turns counts at most once.
// Returns exactly 0 when both counts are zero — a conversation with no
// emotionally loaded words is neutral by definition.
func EmotionalTendency(turns []session.Turn) float64 {
	seen := make(map[string]struct{})
	for _, t := range turns {
		if t.Role != session.RoleStudent {
			continue
		}
		for _, w := range wordPattern.FindAllString(strings.ToLower(t.Content), -1) {
			seen[w] = struct{}{}
		}
	}

	positive := 0
	negative := 0
	for w := range seen {
		if _, ok := positiveTerms[w]; ok {
			positive++
		}
		if _, ok := negativeTerms[w]; ok {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.0
	}
	return round3(float64(positive-negative) / float64(total))
}

// ResponseLength returns the mean whitespace-separated word count per student
// turn, or 0 when there are no student turns.
func ResponseLength(turns []session.Turn) float64 {
	studentTurns := 0
	totalWords := 0

	for _, t := range turns {
		if t.Role != session.RoleStudent {
			continue
		}
		studentTurns++
		totalWords += len(strings.Fields(t.Content))
	}

	if studentTurns == 0 {
		return 0.0
	}
	return round2(float64(totalWords) / float64(studentTurns))
}

// TurnNumber returns the total turn count. Unlike the other statistics it
// counts every role, not just the student.
func TurnNumber(turns []session.Turn) int {
	return len(turns)
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
