package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, updated by regenerateStyles
var (
	ColorPrimary     color.Color = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   color.Color = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       color.Color = lipgloss.Color("#6B7280") // Gray
	ColorBorder      color.Color = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus color.Color = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          color.Color = lipgloss.Color("#1F2937") // Dark background
	ColorBgSelected  color.Color = lipgloss.Color("#7C3AED")
	ColorText        color.Color = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   color.Color = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse color.Color = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorWarning     color.Color = lipgloss.Color("#F59E0B") // Amber
	ColorInfo        color.Color = lipgloss.Color("#06B6D4") // Cyan
	ColorError       color.Color = lipgloss.Color("#EF4444") // Red
	ColorSuccess     color.Color = lipgloss.Color("#10B981") // Green
	ColorTrayLeft    color.Color = lipgloss.Color("#A78BFA") // Light purple
	ColorTrayRight   color.Color = lipgloss.Color("#22D3EE") // Bright cyan
)

// Header styles
var (
	HeaderStyle          lipgloss.Style
	HeaderTabStyle       lipgloss.Style
	HeaderActiveTabStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle      lipgloss.Style
	FooterKeyStyle   lipgloss.Style
	FooterDescStyle  lipgloss.Style
	FooterCountStyle lipgloss.Style
	FooterFullStyle  lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Tile styles
var (
	TileNameStyle        lipgloss.Style
	TileMonogramStyle    lipgloss.Style
	TileMarkerLeftStyle  lipgloss.Style
	TileMarkerRightStyle lipgloss.Style

	// TileCursorStyle supplies the colors painted over the cursor tile's cells
	TileCursorStyle lipgloss.Style
)

// Tray styles
var (
	TrayLeftTitleStyle  lipgloss.Style
	TrayRightTitleStyle lipgloss.Style
	TrayItemStyle       lipgloss.Style
	TrayIndexStyle      lipgloss.Style
)

// Search styles
var (
	SearchPromptStyle lipgloss.Style
	SearchHintStyle   lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusEmptyStyle   lipgloss.Style
)

// Flash styles
var (
	FlashInfoStyle    lipgloss.Style
	FlashSuccessStyle lipgloss.Style
	FlashWarningStyle lipgloss.Style
	FlashErrorStyle   lipgloss.Style
)

// Preview overlay styles
var (
	PreviewStyle      lipgloss.Style
	PreviewTitleStyle lipgloss.Style
	PreviewHelpStyle  lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the color variables.
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTabStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	HeaderActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterCountStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterFullStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	TileNameStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	TileMonogramStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	TileMarkerLeftStyle = lipgloss.NewStyle().
		Foreground(ColorTrayLeft)

	TileMarkerRightStyle = lipgloss.NewStyle().
		Foreground(ColorTrayRight)

	TileCursorStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText)

	TrayLeftTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTrayLeft)

	TrayRightTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTrayRight)

	TrayItemStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	TrayIndexStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	SearchPromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	SearchHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StatusEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	FlashInfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	FlashSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	FlashWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	FlashErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	PreviewStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	PreviewTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	PreviewHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
}
