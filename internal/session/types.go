package session

import (
	"encoding/json"
	"fmt"
)

// Role identifies who authored a conversation turn.
type Role string

const (
	// RoleStudent marks a turn authored by the interviewing medical student.
	RoleStudent Role = "student"

	// RolePatient marks a turn authored by the simulated patient.
	RolePatient Role = "patient"
)

// Turn is one message in a conversation transcript, attributed to the
// student or the patient. Turns are append-only within a session.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts the chat-completion role aliases "user" and
// "assistant" alongside the canonical "student" and "patient" so transcripts
// captured from LLM-style clients decode without translation.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	role, err := ParseRole(raw.Role)
	if err != nil {
		return err
	}
	t.Role = role
	t.Content = raw.Content
	return nil
}

// ParseRole normalises a wire-format role string to a canonical [Role].
func ParseRole(s string) (Role, error) {
	switch s {
	case "student", "user":
		return RoleStudent, nil
	case "patient", "assistant":
		return RolePatient, nil
	default:
		return "", fmt.Errorf("session: unknown role %q", s)
	}
}
