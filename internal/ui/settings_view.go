package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/flat-launcher/internal/config"
)

// SettingsCallbacks connects the Settings tab to the rest of the UI
type SettingsCallbacks struct {
	OnSaved        func(languageChanged bool)
	OnOpenFolder   func()
	OnOpenLogs     func()
	OnClearHistory func()
}

// SettingsView represents the settings tab
type SettingsView struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	callbacks    SettingsCallbacks

	// UI components
	ramSelect      *widget.Select
	demoCheck      *widget.Check
	gameDirEntry   *widget.Entry
	javaEntry      *widget.Entry
	threadsSelect  *widget.Select
	languageSelect *widget.Select
	languageCodes  map[string]string // display name -> code

	content fyne.CanvasObject
}

// NewSettingsView creates the settings tab
func NewSettingsView(settings *config.Settings, window fyne.Window, localization *Localization, callbacks SettingsCallbacks) *SettingsView {
	sv := &SettingsView{
		settings:     settings,
		window:       window,
		localization: localization,
		callbacks:    callbacks,
	}

	sv.createUI()
	sv.loadCurrentSettings()
	return sv
}

// Content returns the view's root object
func (sv *SettingsView) Content() fyne.CanvasObject {
	return sv.content
}

// createUI creates the settings UI
func (sv *SettingsView) createUI() {
	loc := sv.localization

	// RAM applies immediately so the next launch picks it up
	sv.ramSelect = widget.NewSelect(sv.settings.GetRAMOptions(), func(value string) {
		if mb, err := strconv.Atoi(value); err == nil {
			sv.settings.SetRAM(mb)
		}
	})

	sv.demoCheck = widget.NewCheck(loc.GetText(KeyDemoMode), func(checked bool) {
		sv.settings.SetDemo(checked)
	})

	// Game directory selection
	sv.gameDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sv.onBrowseDirectory)
	openDirBtn := widget.NewButton(loc.GetText(KeyOpenFolder), func() {
		if sv.callbacks.OnOpenFolder != nil {
			sv.callbacks.OnOpenFolder()
		}
	})
	gameDirRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseDirBtn, openDirBtn), sv.gameDirEntry)
	gameDirHint := widget.NewLabel(loc.GetText(KeyGameDirectoryHint))
	gameDirHint.Importance = widget.LowImportance

	sv.javaEntry = widget.NewEntry()
	sv.javaEntry.SetPlaceHolder("java")

	sv.threadsSelect = widget.NewSelect(DownloadThreadOptions, nil)

	// Language selection by display name
	sv.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sv.settings.GetLanguageOptions() {
		sv.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sv.languageSelect = widget.NewSelect(languageOptions, nil)

	saveBtn := widget.NewButton(loc.GetText(KeySave), sv.onSave)
	saveBtn.Importance = widget.HighImportance

	logsBtn := widget.NewButton(loc.GetText(KeyOpenLogs), func() {
		if sv.callbacks.OnOpenLogs != nil {
			sv.callbacks.OnOpenLogs()
		}
	})
	clearBtn := widget.NewButton(loc.GetText(KeyClearHistory), func() {
		if sv.callbacks.OnClearHistory != nil {
			sv.callbacks.OnClearHistory()
		}
	})
	clearBtn.Importance = widget.DangerImportance

	form := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyRAM), sv.ramSelect),
		widget.NewFormItem("", sv.demoCheck),
		widget.NewFormItem(loc.GetText(KeyGameDirectory), container.NewVBox(gameDirRow, gameDirHint)),
		widget.NewFormItem(loc.GetText(KeyJavaPath), sv.javaEntry),
		widget.NewFormItem(loc.GetText(KeyDownloadThreads), sv.threadsSelect),
		widget.NewFormItem(loc.GetText(KeyLanguage), sv.languageSelect),
	)

	title := widget.NewLabelWithStyle(loc.GetText(KeySettings), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	sv.content = container.NewPadded(container.NewVBox(
		title,
		form,
		container.NewHBox(saveBtn, logsBtn, clearBtn),
	))
}

// loadCurrentSettings loads current settings into the UI
func (sv *SettingsView) loadCurrentSettings() {
	sv.ramSelect.SetSelected(strconv.Itoa(sv.settings.GetRAM()))
	sv.demoCheck.SetChecked(sv.settings.GetDemo())
	sv.gameDirEntry.SetText(sv.settings.GetGameDirectory())
	sv.javaEntry.SetText(sv.settings.GetJavaPath())
	sv.threadsSelect.SetSelected(strconv.Itoa(sv.settings.GetDownloadThreads()))
	if name, ok := sv.settings.GetLanguageOptions()[sv.settings.GetLanguage()]; ok {
		sv.languageSelect.SetSelected(name)
	}
}

// onBrowseDirectory handles directory browsing
func (sv *SettingsView) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sv.gameDirEntry.SetText(uri.Path())
	}, sv.window)
}

// onSave handles saving the settings
func (sv *SettingsView) onSave() {
	sv.settings.SetGameDirectory(sv.gameDirEntry.Text)
	sv.settings.SetJavaPath(sv.javaEntry.Text)

	if threads, err := strconv.Atoi(sv.threadsSelect.Selected); err == nil {
		sv.settings.SetDownloadThreads(threads)
	}

	languageChanged := false
	if code, ok := sv.languageCodes[sv.languageSelect.Selected]; ok && code != sv.settings.GetLanguage() {
		sv.settings.SetLanguage(code)
		languageChanged = true
	}

	sv.loadCurrentSettings()
	if sv.callbacks.OnSaved != nil {
		sv.callbacks.OnSaved(languageChanged)
	}
}
