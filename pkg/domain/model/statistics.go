package model

import "github.com/secmon-lab/riskboard/pkg/domain/types"

// Statistics is the count of students per risk category
type Statistics struct {
	Total  int `json:"total"`
	High   int `json:"high_risk"`
	Medium int `json:"medium_risk"`
	Low    int `json:"low_risk"`
}

// Count returns the count shown on the card for the given filter
func (s Statistics) Count(f types.RiskFilter) int {
	switch types.RiskCategory(f) {
	case types.RiskCategoryHigh:
		return s.High
	case types.RiskCategoryMedium:
		return s.Medium
	case types.RiskCategoryLow:
		return s.Low
	default:
		return s.Total
	}
}

// Aggregate classifies the students in a single pass.
// Students with an unknown category count toward Total only.
func Aggregate(students []*Student) Statistics {
	stats := Statistics{Total: len(students)}
	for _, s := range students {
		switch s.Category {
		case types.RiskCategoryHigh:
			stats.High++
		case types.RiskCategoryMedium:
			stats.Medium++
		case types.RiskCategoryLow:
			stats.Low++
		}
	}
	return stats
}

// FilterStudents returns the students matching the filter in their original order.
// The result is always a new slice; the source is never modified.
func FilterStudents(students []*Student, filter types.RiskFilter) []*Student {
	result := make([]*Student, 0, len(students))
	for _, s := range students {
		if filter.Matches(s.Category) {
			result = append(result, s)
		}
	}
	return result
}
