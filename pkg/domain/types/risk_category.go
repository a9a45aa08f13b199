package types

import "fmt"

// RiskCategory is the ordinal label the backend assigns from a student's final risk score
type RiskCategory string

const (
	RiskCategoryHigh   RiskCategory = "High Risk"
	RiskCategoryMedium RiskCategory = "Medium Risk"
	RiskCategoryLow    RiskCategory = "Low Risk"
)

// AllRiskCategories returns all valid risk categories, most severe first
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryHigh,
		RiskCategoryMedium,
		RiskCategoryLow,
	}
}

// IsValid checks if the risk category is valid
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryHigh,
		RiskCategoryMedium,
		RiskCategoryLow:
		return true
	default:
		return false
	}
}

// Level returns the colour level used by badges and cards: danger, warning or success
func (c RiskCategory) Level() string {
	switch c {
	case RiskCategoryHigh:
		return "danger"
	case RiskCategoryMedium:
		return "warning"
	default:
		return "success"
	}
}

// Slug returns the CSS modifier of the category ("High", "Medium", "Low")
func (c RiskCategory) Slug() string {
	switch c {
	case RiskCategoryHigh:
		return "High"
	case RiskCategoryMedium:
		return "Medium"
	case RiskCategoryLow:
		return "Low"
	default:
		return ""
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	c := RiskCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return c, nil
}

// RiskFilter is the value of the category selector. It is either "All" or a RiskCategory.
type RiskFilter string

// RiskFilterAll selects every student
const RiskFilterAll RiskFilter = "All"

// AllRiskFilters returns every selector value in display order
func AllRiskFilters() []RiskFilter {
	filters := []RiskFilter{RiskFilterAll}
	for _, c := range AllRiskCategories() {
		filters = append(filters, RiskFilter(c))
	}
	return filters
}

// IsValid checks if the filter is "All" or a valid category
func (f RiskFilter) IsValid() bool {
	return f == RiskFilterAll || RiskCategory(f).IsValid()
}

// Matches reports whether a student in category c passes the filter
func (f RiskFilter) Matches(c RiskCategory) bool {
	return f == RiskFilterAll || RiskCategory(f) == c
}

// String returns the string representation of the filter
func (f RiskFilter) String() string {
	return string(f)
}

// ParseRiskFilter parses a selector value. An empty string selects all. The
// short forms "High", "Medium" and "Low" name the matching category.
func ParseRiskFilter(s string) (RiskFilter, error) {
	if s == "" {
		return RiskFilterAll, nil
	}
	for _, c := range AllRiskCategories() {
		if s == c.Slug() {
			return RiskFilter(c), nil
		}
	}
	f := RiskFilter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid risk filter: %s", s)
	}
	return f, nil
}
