package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// RawScoreInput is what the form layer sends on every change: the
// subject demographics plus the raw field values, still as strings.
// Partial input is an expected transient state, not an error.
type RawScoreInput struct {
	PatientAge     int               `json:"patientAge"`
	EducationLevel string            `json:"educationLevel,omitempty"`
	Values         map[string]string `json:"values"`
	Notes          string            `json:"notes,omitempty"`
}

// CalculatedResult is the engine's output for one administration. The
// four maps are keyed by subscore name and line up with the JSONB
// columns of test_results. A nil entry in CalculatedScores or
// Percentiles means "unscored" for that subscore and must never be
// coerced to zero.
type CalculatedResult struct {
	RawScores        map[string]string   `json:"rawScores"`
	CalculatedScores map[string]*float64 `json:"calculatedScores"`
	Percentiles      map[string]*string  `json:"percentiles"`
	Classifications  map[string]string   `json:"classifications"`
	Notes            string              `json:"notes,omitempty"`
}

// TestResult is the persisted record of one test administration.
// Records are insert-only: corrections are new rows, preserving the
// audit trail.
type TestResult struct {
	ID               int `gorm:"primaryKey"`
	ClientID         int
	ScheduleID       *int
	TestCode         string
	TestName         string
	PatientAge       int
	RawScores        json.RawMessage `gorm:"type:jsonb"`
	CalculatedScores json.RawMessage `gorm:"type:jsonb"`
	Percentiles      json.RawMessage `gorm:"type:jsonb"`
	Classifications  json.RawMessage `gorm:"type:jsonb"`
	AppliedBy        *int
	AppliedAt        time.Time
	Notes            *string
	CreatedAt        time.Time
}

// BeforeUpdate blocks in-place edits at the ORM level; the clinical
// record is append-only even though the underlying store would allow
// an UPDATE.
func (TestResult) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrInvalidData
}

// NewTestResult packages a CalculatedResult for persistence.
func NewTestResult(def *TestDefinition, in *RawScoreInput, calc *CalculatedResult, clientID int, scheduleID, appliedBy *int, appliedAt time.Time) (*TestResult, error) {
	raw, err := json.Marshal(calc.RawScores)
	if err != nil {
		return nil, err
	}
	scores, err := json.Marshal(calc.CalculatedScores)
	if err != nil {
		return nil, err
	}
	percentiles, err := json.Marshal(calc.Percentiles)
	if err != nil {
		return nil, err
	}
	classifications, err := json.Marshal(calc.Classifications)
	if err != nil {
		return nil, err
	}

	var notes *string
	if calc.Notes != "" {
		n := calc.Notes
		notes = &n
	}

	return &TestResult{
		ClientID:         clientID,
		ScheduleID:       scheduleID,
		TestCode:         def.Code,
		TestName:         def.Name,
		PatientAge:       in.PatientAge,
		RawScores:        raw,
		CalculatedScores: scores,
		Percentiles:      percentiles,
		Classifications:  classifications,
		AppliedBy:        appliedBy,
		AppliedAt:        appliedAt,
		Notes:            notes,
	}, nil
}

// Professional is the minimal identity row used to resolve applied_by
// into a display name for history and export. Account management lives
// elsewhere.
type Professional struct {
	ID   int `gorm:"primaryKey"`
	Name string
}
