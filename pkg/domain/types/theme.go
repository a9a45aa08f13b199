package types

// Theme is the colour scheme preference of a viewer
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeCookieKey is the fixed key the preference is stored under on the client
const ThemeCookieKey = "theme"

// IsValid checks if the theme is valid
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// IsDark reports whether the dark scheme is selected
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// String returns the string representation of the theme
func (t Theme) String() string {
	return string(t)
}

// ParseTheme returns the theme named by s, or fallback when s is unknown
func ParseTheme(s string, fallback Theme) Theme {
	t := Theme(s)
	if t.IsValid() {
		return t
	}
	return fallback
}
