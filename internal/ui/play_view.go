package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/flat-launcher/internal/model"
)

// PlayView holds the username, version and launch controls
type PlayView struct {
	localization *Localization

	usernameEntry *widget.Entry
	versionSelect *widget.Select
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
	playButton    *widget.Button
	cancelButton  *widget.Button
	history       *HistoryList

	content fyne.CanvasObject
}

// NewPlayView creates the Play tab. onPlay and onCancel are invoked from the UI thread.
func NewPlayView(localization *Localization, onPlay, onCancel func()) *PlayView {
	v := &PlayView{localization: localization}

	title := widget.NewLabelWithStyle(localization.GetText(KeyPlayTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.usernameEntry = widget.NewEntry()
	v.usernameEntry.SetPlaceHolder(localization.GetText(KeyUsernamePlaceholder))
	// Launch when user presses Enter in the username field
	v.usernameEntry.OnSubmitted = func(string) {
		if !v.playButton.Disabled() {
			onPlay()
		}
	}

	v.versionSelect = widget.NewSelect(nil, nil)
	versionRow := container.NewBorder(nil, nil, widget.NewLabel(localization.GetText(KeyVersion)), nil, v.versionSelect)

	v.progressLabel = widget.NewLabel("")
	v.progressLabel.Importance = widget.LowImportance
	v.progressLabel.Hide()
	v.progressBar = widget.NewProgressBar()
	v.progressBar.Hide()

	v.playButton = widget.NewButtonWithIcon(localization.GetText(KeyPlayButton), theme.MediaPlayIcon(), onPlay)
	v.playButton.Importance = widget.HighImportance
	v.cancelButton = widget.NewButtonWithIcon(localization.GetText(KeyCancel), theme.CancelIcon(), onCancel)
	v.cancelButton.Hide()

	v.history = NewHistoryList(localization)

	controls := container.NewVBox(
		title,
		v.usernameEntry,
		versionRow,
		v.progressLabel,
		v.progressBar,
		container.NewBorder(nil, nil, nil, v.cancelButton, v.playButton),
		widget.NewSeparator(),
		widget.NewLabelWithStyle(localization.GetText(KeyRecentLaunches), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	v.content = container.NewPadded(container.NewBorder(controls, nil, nil, nil, v.history.Container()))
	return v
}

// Content returns the view's root object
func (v *PlayView) Content() fyne.CanvasObject {
	return v.content
}

// Username returns the entered username
func (v *PlayView) Username() string {
	return v.usernameEntry.Text
}

// SetUsername replaces the entered username
func (v *PlayView) SetUsername(name string) {
	v.usernameEntry.SetText(name)
}

// SelectedVersion returns the chosen version id, empty when none
func (v *PlayView) SelectedVersion() string {
	return v.versionSelect.Selected
}

// SetVersions fills the version list and selects preferred, or the first entry
// when preferred is not listed
func (v *PlayView) SetVersions(ids []string, preferred string) {
	v.versionSelect.Options = ids
	v.versionSelect.ClearSelected()
	if len(ids) == 0 {
		v.versionSelect.Refresh()
		return
	}
	selected := ids[0]
	for _, id := range ids {
		if id == preferred {
			selected = id
			break
		}
	}
	v.versionSelect.SetSelected(selected)
}

// SetRunning locks or unlocks the launch controls
func (v *PlayView) SetRunning(running bool) {
	if running {
		v.playButton.Disable()
		v.usernameEntry.Disable()
		v.versionSelect.Disable()
		v.cancelButton.Enable()
		v.cancelButton.Show()
		v.progressBar.Min = 0
		v.progressBar.Max = 1
		v.progressBar.SetValue(0)
		v.progressBar.Show()
		v.progressLabel.SetText("")
		v.progressLabel.Show()
		return
	}
	v.playButton.Enable()
	v.usernameEntry.Enable()
	v.versionSelect.Enable()
	v.cancelButton.Hide()
	v.progressBar.Hide()
}

// SetProgress shows installation progress
func (v *PlayView) SetProgress(p model.Progress) {
	if p.Max > 0 {
		v.progressBar.Max = float64(p.Max)
		v.progressBar.SetValue(float64(p.Current))
	} else {
		v.progressBar.Max = 1
		v.progressBar.SetValue(0)
	}
	v.progressLabel.SetText(p.Label)
}

// SetStatus replaces the status line under the launch controls
func (v *PlayView) SetStatus(text string) {
	v.progressLabel.SetText(text)
	v.progressLabel.Show()
}

// DisableCancel greys out the cancel button once cancellation was requested
func (v *PlayView) DisableCancel() {
	v.cancelButton.Disable()
}
