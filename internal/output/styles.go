package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline
// lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: manifest paths, flag names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for enabled flags and added values.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for changed flags.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for disabled-by-change flags.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (manifest paths, flag names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleHeader styles table headers.
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// FlagValueStyle returns the style for a rendered flag value.
func FlagValueStyle(value bool) lipgloss.Style {
	if value {
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
	return lipgloss.NewStyle().Faint(true)
}

// FormatFlagValue renders a boolean flag value.
func FormatFlagValue(value bool) string {
	return FlagValueStyle(value).Render(fmt.Sprintf("%t", value))
}

// minFlagColumnWidth aligns the arrow of flag change lines.
const minFlagColumnWidth = 32

// FormatFlagChange renders a single flag transition.
//
// Format: f:<name>  <old> → <new>
func FormatFlagChange(name string, from, to bool) string {
	padding := minFlagColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	toStyle := lipgloss.NewStyle().Foreground(ColorRed)
	if to {
		toStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	}

	return StyleDim.Render("f:") + StyleNoun.Render(name) + strings.Repeat(" ", padding) +
		FlagValueStyle(from).Render(fmt.Sprintf("%t", from)) + " → " +
		toStyle.Render(fmt.Sprintf("%t", to))
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
