// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the static and prompt packages.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors used throughout the UI
var (
	// Warning is used for guessed paths and stale entries (orange)
	Warning color.Color = lipgloss.Color("214")

	// Muted is used for secondary/inactive text (gray)
	Muted color.Color = lipgloss.Color("240")

	// Accent is the highlight color for the active project (pink)
	Accent color.Color = lipgloss.Color("212")
)

// Common styles
var (
	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)
