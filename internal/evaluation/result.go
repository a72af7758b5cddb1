package evaluation

import "github.com/Y3454R/vsp-mvp/internal/metrics"

// Scores holds the nine rubric dimensions of interview-skill evaluation.
// Each dimension is scored in [0, 100].
type Scores struct {
	RapportBuilding           float64 `json:"rapport_building"`
	ActiveListeningEmpathy    float64 `json:"active_listening_empathy"`
	PsychiatricHistory        float64 `json:"psychiatric_history"`
	RiskAssessment            float64 `json:"risk_assessment"`
	BiopsychosocialAssessment float64 `json:"biopsychosocial_assessment"`
	CommunicationSkills       float64 `json:"communication_skills"`
	CulturalSensitivity       float64 `json:"cultural_sensitivity"`
	InterviewStructure        float64 `json:"interview_structure"`
	OverallScore              float64 `json:"overall_score"`
}

// Result is the complete outcome of one evaluation request.
//
// A Result is always well-formed: when anything in the evaluation path fails
// the scores are zeroed and Error describes the failure, but the caller still
// receives a Result rather than an error. Evaluation is advisory and must not
// crash a student session.
type Result struct {
	SessionID           string                       `json:"session_id"`
	CaseID              string                       `json:"case_id"`
	Scores              Scores                       `json:"scores"`
	Strengths           []string                     `json:"strengths"`
	AreasForImprovement []string                     `json:"areas_for_improvement"`
	Feedback            string                       `json:"feedback"`
	Metrics             *metrics.ConversationMetrics `json:"metrics,omitempty"`
	Error               string                       `json:"error,omitempty"`
}
