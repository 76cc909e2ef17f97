// Package tui renders the tables and boxes of the jvmrepo CLI using lipgloss.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Lazy initialization to avoid cold start penalty from lipgloss terminal detection
var (
	initOnce sync.Once

	// Colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorMuted     lipgloss.Color

	// Text styles
	StyleTitle            lipgloss.Style
	StyleVersion          lipgloss.Style
	StyleComponent        lipgloss.Style
	StylePlatform         lipgloss.Style
	StyleMuted            lipgloss.Style
	StyleIndicator        lipgloss.Style
	StyleWarningIndicator lipgloss.Style

	// Box styles
	StyleInfoBox    lipgloss.Style
	StyleSuccessBox lipgloss.Style
	StyleErrorBox   lipgloss.Style

	// Table styles
	StyleTableHeader    lipgloss.Style
	StyleTableCell      lipgloss.Style
	StyleTableRowActive lipgloss.Style
	StyleTableBorder    lipgloss.Style

	// Indicator strings
	CheckMark string
	CrossMark string
	Arrow     string
)

// initStyles initializes all lipgloss styles lazily
func initStyles() {
	initOnce.Do(func() {
		// Force TrueColor profile to skip slow terminal capability detection
		// See: https://github.com/charmbracelet/lipgloss/issues/86
		lipgloss.SetColorProfile(termenv.TrueColor)

		// Color palette
		colorPrimary = lipgloss.Color("39")    // Cyan
		colorSecondary = lipgloss.Color("213") // Magenta/Pink
		colorSuccess = lipgloss.Color("42")    // Green
		colorWarning = lipgloss.Color("214")   // Orange/Yellow
		colorError = lipgloss.Color("196")     // Red
		colorMuted = lipgloss.Color("245")     // Gray

		// Text styles
		StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

		StyleVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

		StyleComponent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

		StylePlatform = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

		StyleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

		StyleIndicator = lipgloss.NewStyle().
			Foreground(colorSuccess)

		StyleWarningIndicator = lipgloss.NewStyle().
			Foreground(colorWarning)

		// Box styles
		StyleInfoBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

		StyleSuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Padding(0, 1)

		StyleErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

		// Table styles
		StyleTableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingRight(2)

		StyleTableCell = lipgloss.NewStyle().
			PaddingRight(2)

		StyleTableRowActive = lipgloss.NewStyle().
			Foreground(colorSuccess)

		StyleTableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

		// Indicator constants with styles applied
		CheckMark = StyleIndicator.Render("✓")
		CrossMark = lipgloss.NewStyle().Foreground(colorError).Render("✗")
		Arrow = lipgloss.NewStyle().Foreground(colorPrimary).Render("→")
	})
}

// RenderTitle renders a styled title
func RenderTitle(text string) string {
	initStyles()
	return StyleTitle.Render(text)
}

// RenderComponent renders a component name with styling
func RenderComponent(name string) string {
	initStyles()
	return StyleComponent.Render(name)
}

// RenderPlatform renders a platform name with styling
func RenderPlatform(name string) string {
	initStyles()
	return StylePlatform.Render(name)
}

// RenderVersion renders a version string with styling
func RenderVersion(version string) string {
	initStyles()
	return StyleVersion.Render(version)
}

// RenderMuted renders text in a muted/dim style
func RenderMuted(text string) string {
	initStyles()
	return StyleMuted.Render(text)
}

// RenderWarning renders text in the warning color
func RenderWarning(text string) string {
	initStyles()
	return StyleWarningIndicator.Render(text)
}

// RenderInfoBox renders content in an info-styled box
func RenderInfoBox(content string) string {
	initStyles()
	return StyleInfoBox.Render(content)
}

// RenderSuccessBox renders content in a success-styled box
func RenderSuccessBox(content string) string {
	initStyles()
	return StyleSuccessBox.Render(content)
}

// RenderErrorBox renders content in an error-styled box
func RenderErrorBox(content string) string {
	initStyles()
	return StyleErrorBox.Render(content)
}

// GetCheckMark returns the styled checkmark indicator
func GetCheckMark() string {
	initStyles()
	return CheckMark
}

// GetCrossMark returns the styled cross indicator
func GetCrossMark() string {
	initStyles()
	return CrossMark
}

// GetArrow returns the styled arrow indicator
func GetArrow() string {
	initStyles()
	return Arrow
}
