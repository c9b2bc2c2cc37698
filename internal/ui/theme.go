package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DefaultAccentColor is used when no or an invalid accent colour is given
const DefaultAccentColor = "#1976d2"

// hoverBlend is how far hover colours move from the accent to the background
const hoverBlend = 0.75

var (
	lightBackground = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	darkBackground  = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
	lightText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	darkText        = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
)

// PlayerTheme is a compact theme built around a single accent colour
type PlayerTheme struct {
	accent color.NRGBA
}

// NewPlayerTheme creates a theme with the accent colour given as "#rrggbb"
func NewPlayerTheme(accentHex string) *PlayerTheme {
	if accentHex == "" {
		accentHex = DefaultAccentColor
	}
	accent, err := ParseHexColor(accentHex)
	if err != nil {
		log.Printf("Using default accent colour: %v", err)
		accent, _ = ParseHexColor(DefaultAccentColor)
	}
	return &PlayerTheme{accent: accent}
}

// Accent returns the accent colour
func (t *PlayerTheme) Accent() color.NRGBA {
	return t.accent
}

// Color returns theme colors
func (t *PlayerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return t.accent
	case theme.ColorNameForegroundOnPrimary:
		return textOn(t.accent)
	case theme.ColorNameHover:
		return BlendColors(t.accent, background(variant), hoverBlend)
	case theme.ColorNameBackground:
		return background(variant)
	case theme.ColorNameForeground:
		return textOn(background(variant))
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PlayerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PlayerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *PlayerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}

// StyleSheet returns CSS for rich text views using the theme colours
func (t *PlayerTheme) StyleSheet(variant fyne.ThemeVariant) string {
	return "body { background-color: " + ColorToRgba(background(variant)) +
		"; color: " + ColorToRgba(textOn(background(variant))) + "; }\n" +
		"a { color: " + ColorToRgba(t.accent) + "; }\n"
}

func background(variant fyne.ThemeVariant) color.NRGBA {
	if variant == theme.VariantDark {
		return darkBackground
	}
	return lightBackground
}

func textOn(c color.Color) color.NRGBA {
	if IsColorDark(c) {
		return lightText
	}
	return darkText
}
