// Package casefile provides the clinical case model and a directory-backed
// repository for loading simulated-patient cases.
//
// A [Case] is the full declarative description of one simulated psychiatric
// patient — persona, presenting complaint, symptom picture, and history. Cases
// are stored one per JSON file in a case directory; each file is
// self-describing and carries its own "id". The [Repository] scans the
// directory once, caches the parsed cases in memory, and supports a forced
// reload for development workflows.
package casefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when a case ID is not present in the repository.
// It is a recoverable condition surfaced to the caller, never a fault.
var ErrNotFound = errors.New("casefile: case not found")

// DefaultDifficulty is applied when a case file omits "difficulty_level".
const DefaultDifficulty = "medium"

// Case is the immutable record describing one simulated patient.
// Created by the repository at load time; never mutated afterwards.
type Case struct {
	// ID uniquely identifies the case across the case directory.
	ID string `json:"id"`

	// PatientName is the simulated patient's display name.
	PatientName string `json:"patient_name"`

	// Age is the patient's age in years.
	Age int `json:"age"`

	// Gender is the patient's gender as free text.
	Gender string `json:"gender"`

	// ChiefComplaint is the presenting complaint in the patient's own words.
	ChiefComplaint string `json:"chief_complaint"`

	// Condition is the underlying clinical condition the case portrays.
	Condition string `json:"condition"`

	// Background is free-text social and personal history.
	Background string `json:"background"`

	// Symptoms is a free-text description of the symptom picture.
	Symptoms string `json:"symptoms"`

	// MedicalHistory summarises relevant past medical and psychiatric history.
	MedicalHistory string `json:"medical_history"`

	// DifficultyLevel rates the interview difficulty ("easy", "medium", "hard").
	DifficultyLevel string `json:"difficulty_level"`

	// ExpectedQuestions optionally lists questions a well-conducted interview
	// should cover. Used by instructors, not by the engines.
	ExpectedQuestions []string `json:"expected_questions,omitempty"`
}

// Validate checks that the case carries the fields every engine depends on.
func (c *Case) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.PatientName == "" {
		errs = append(errs, errors.New("patient_name must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("casefile: invalid case: %w", err)
	}
	return nil
}

// DecodeCase parses a single case record from r and applies defaults.
// The reader is consumed entirely; the caller is responsible for closing it.
func DecodeCase(r io.Reader) (*Case, error) {
	var c Case
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("casefile: decode case json: %w", err)
	}
	if c.DifficultyLevel == "" {
		c.DifficultyLevel = DefaultDifficulty
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
