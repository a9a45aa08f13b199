package types

import "fmt"

// ViewMode is the region shown by the admin dashboard toggle
type ViewMode string

const (
	ViewModeStudent ViewMode = "student"
	ViewModeMentor  ViewMode = "mentor"
)

// IsValid checks if the view mode is valid
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewModeStudent, ViewModeMentor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the view mode
func (m ViewMode) String() string {
	return string(m)
}

// ParseViewMode parses a string into a ViewMode
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid view mode: %s", s)
	}
	return m, nil
}
