package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual styling for the quill pad.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
}

// DefaultTheme returns the default theme for the pad.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("12"),  // Blue
		Secondary: lipgloss.Color("14"),  // Cyan
		Success:   lipgloss.Color("10"),  // Green
		Warning:   lipgloss.Color("11"),  // Yellow
		Error:     lipgloss.Color("9"),   // Red
		Muted:     lipgloss.Color("240"), // Gray
	}
}

// MonoTheme returns a grayscale theme for low-color terminals.
func MonoTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("15"),
		Secondary: lipgloss.Color("7"),
		Success:   lipgloss.Color("15"),
		Warning:   lipgloss.Color("7"),
		Error:     lipgloss.Color("15"),
		Muted:     lipgloss.Color("8"),
	}
}

// ThemeByName resolves a configured theme name, falling back to the default.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}
