package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
)

// StudentID identifies a student. The backend emits it either as a string or as a
// number depending on the source spreadsheet, so both forms decode into a string.
type StudentID string

// UnmarshalJSON accepts a JSON string or number
func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(ErrInvalidStudentID, "failed to decode string ID", goerr.V(RawValueKey, string(data)))
		}
		*id = StudentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(ErrInvalidStudentID, "student ID must be a string or a number", goerr.V(RawValueKey, string(data)))
	}
	*id = StudentID(n.String())
	return nil
}

// String returns the string representation of StudentID
func (id StudentID) String() string {
	return string(id)
}

// RiskFactorLabels are the axis labels of the four sub-scores, in SubScores.Values order
var RiskFactorLabels = []string{"Financial", "Attendance", "Internals", "CGPA"}

// SubScores holds the four component risk scores, each on a 0-10 scale
type SubScores struct {
	Financial  float64 `json:"financial_risk" validate:"gte=0,lte=10"`
	Attendance float64 `json:"attendance_risk" validate:"gte=0,lte=10"`
	Internals  float64 `json:"internals_risk" validate:"gte=0,lte=10"`
	CGPA       float64 `json:"cgpa_risk" validate:"gte=0,lte=10"`
}

// Values returns the sub-scores as financial, attendance, internals, cgpa
func (s SubScores) Values() [4]float64 {
	return [4]float64{s.Financial, s.Attendance, s.Internals, s.CGPA}
}

// Sum returns the total of the four sub-scores
func (s SubScores) Sum() float64 {
	return s.Financial + s.Attendance + s.Internals + s.CGPA
}

// Composition returns each sub-score as a percentage of their sum.
// A non-positive sum yields all zeros.
func (s SubScores) Composition() [4]float64 {
	total := s.Sum()
	if total <= 0 {
		return [4]float64{}
	}

	var shares [4]float64
	for i, v := range s.Values() {
		shares[i] = v / total * 100
	}
	return shares
}

// Student is a read-only snapshot of one student as scored by the backend
type Student struct {
	ID         StudentID `json:"student_id" validate:"required"`
	Name       string    `json:"student_name" validate:"required"`
	MentorName string    `json:"mentor_name"`

	CGPA       float64 `json:"cgpa" validate:"gte=0,lte=10"`
	Attendance float64 `json:"attendance" validate:"gte=0,lte=100"`
	FeesDue    float64 `json:"Fees_Amount_Due" validate:"gte=0"`

	SubScores

	FinalRiskScore float64            `json:"final_risk_score" validate:"gte=0"`
	Category       types.RiskCategory `json:"risk_category" validate:"required,risk_category"`

	CounsellingSuggestion  string `json:"counselling_suggestions,omitempty"`
	FinancialAidSuggestion string `json:"financial_aid_suggestions,omitempty"`
}

// Validate checks the required fields and score ranges of the record
func (s *Student) Validate() error {
	return validateStruct(s, ErrInvalidStudent, goerr.V(StudentIDKey, s.ID))
}

// IsCritical reports whether the final score is strictly above threshold
func (s *Student) IsCritical(threshold float64) bool {
	return s.FinalRiskScore > threshold
}

// FindStudent returns the student with the given ID, or nil
func FindStudent(students []*Student, id StudentID) *Student {
	for _, s := range students {
		if s.ID == id {
			return s
		}
	}
	return nil
}
