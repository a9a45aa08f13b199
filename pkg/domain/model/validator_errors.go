package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidStudent   = goerr.New("invalid student record")
	ErrInvalidStudentID = goerr.New("invalid student ID")
)

// Context keys for error values
const (
	StudentIDKey = "student_id"
	FieldsKey    = "fields"
	RawValueKey  = "raw_value"
)
