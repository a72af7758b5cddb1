package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// judgment is the JSON shape the model is instructed to return.
// Missing fields decode to their zero values, matching the "absent scores
// count as zero" repair policy.
type judgment struct {
	RapportBuilding           float64  `json:"rapport_building"`
	ActiveListeningEmpathy    float64  `json:"active_listening_empathy"`
	PsychiatricHistory        float64  `json:"psychiatric_history"`
	RiskAssessment            float64  `json:"risk_assessment"`
	BiopsychosocialAssessment float64  `json:"biopsychosocial_assessment"`
	CommunicationSkills       float64  `json:"communication_skills"`
	CulturalSensitivity       float64  `json:"cultural_sensitivity"`
	InterviewStructure        float64  `json:"interview_structure"`
	OverallScore              float64  `json:"overall_score"`
	Strengths                 []string `json:"strengths"`
	AreasForImprovement       []string `json:"areas_for_improvement"`
	Feedback                  string   `json:"feedback"`
}

// parseJudgment extracts the rubric judgment from raw model output.
//
// Models frequently wrap their JSON in a fenced code block despite being told
// not to; the fence markers are stripped before decoding. A decode failure
// returns an error that carries the raw text for diagnosis — the caller
// degrades the result instead of failing the request.
func parseJudgment(raw string) (*judgment, error) {
	text := stripFence(raw)

	var j judgment
	if err := json.Unmarshal([]byte(text), &j); err != nil {
		return nil, fmt.Errorf("evaluation: parse model judgment: %w (raw output: %s)", err, raw)
	}
	return &j, nil
}

// stripFence removes a surrounding Markdown code fence, if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
