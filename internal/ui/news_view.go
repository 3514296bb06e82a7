package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// NewNewsView creates the static News tab
func NewNewsView(localization *Localization) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(localization.GetText(KeyNewsTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	body := widget.NewRichTextFromMarkdown(localization.GetText(KeyNewsBody))
	body.Wrapping = fyne.TextWrapWord

	return container.NewPadded(container.NewBorder(title, nil, nil, nil, container.NewVScroll(body)))
}
