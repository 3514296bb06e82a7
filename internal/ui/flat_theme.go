package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Flat palette
var (
	FlatPrimary      = color.RGBA{R: 42, G: 130, B: 218, A: 255}  // #2a82da
	FlatPrimaryHover = color.RGBA{R: 26, G: 111, B: 199, A: 255}  // #1a6fc7
	FlatDisabled     = color.RGBA{R: 204, G: 204, B: 204, A: 255} // #cccccc
	FlatSidebar      = color.RGBA{R: 240, G: 240, B: 240, A: 255} // #f0f0f0
	FlatHighlight    = color.RGBA{R: 0, G: 139, B: 139, A: 255}   // dark cyan
)

// FlatTheme is a light flat theme with a blue accent
type FlatTheme struct{}

// NewFlatTheme creates a new flat theme
func NewFlatTheme() fyne.Theme {
	return &FlatTheme{}
}

// Color returns theme colors
func (t *FlatTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return FlatPrimary
	case theme.ColorNameHover:
		return FlatPrimaryHover
	case theme.ColorNameDisabledButton:
		return FlatDisabled
	case theme.ColorNameSelection:
		return FlatHighlight
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameBackground:
		return color.White
	case theme.ColorNameInputBackground:
		return color.White
	case theme.ColorNameHeaderBackground:
		return FlatSidebar
	case theme.ColorNameForeground:
		return color.Black
	}

	// Flat look is always light
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}

// Font returns theme fonts
func (t *FlatTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *FlatTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *FlatTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputRadius:
		return 4
	case theme.SizeNameSelectionRadius:
		return 5
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	}

	return theme.DefaultTheme().Size(name)
}
