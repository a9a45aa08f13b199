package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrStudentNotFound = errors.New("student not found")
	ErrSessionNotFound = errors.New("session not found")

	// Input errors
	ErrInvalidFilter   = errors.New("invalid risk filter")
	ErrInvalidViewMode = errors.New("invalid view mode")

	// Access control errors
	ErrViewToggleUnavailable = errors.New("view toggle is not available for mentor-scoped dashboard")

	// Other errors
	ErrNotifierNotConfigured = errors.New("notifier is not configured")
)

// Context keys for error values
const (
	StudentIDKey = "student_id"
	SectionKey   = "section"
	SessionIDKey = "session_id"
)
