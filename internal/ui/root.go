package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/flat-launcher/internal/config"
	"github.com/ytget/flat-launcher/internal/history"
	"github.com/ytget/flat-launcher/internal/launch"
	"github.com/ytget/flat-launcher/internal/minecraft"
	"github.com/ytget/flat-launcher/internal/model"
	"github.com/ytget/flat-launcher/internal/platform"
)

// VersionCatalogue lists installable versions and tunes installer downloads
type VersionCatalogue interface {
	FetchVersions(ctx context.Context) ([]minecraft.VersionEntry, error)
	SetConcurrency(n int)
}

// HistoryStore lists and clears past launches
type HistoryStore interface {
	Recent(limit int) ([]history.Record, error)
	Clear() error
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	appInfo      config.App
	settings     *config.Settings
	localization *Localization
	launcher     launch.Launcher
	catalogue    VersionCatalogue
	history      HistoryStore
	notifier     Notifier
	closeWindow  func()

	tabs         *container.AppTabs
	play         *PlayView
	settingsView *SettingsView
	accountLabel *widget.Label

	versions []string
	running  bool
}

// NewRootUI creates and initializes the main UI. store may be nil when the
// history database is unavailable.
func NewRootUI(window fyne.Window, appInfo config.App, settings *config.Settings, launcher launch.Launcher, catalogue VersionCatalogue, store HistoryStore) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		appInfo:      appInfo,
		settings:     settings,
		localization: localization,
		launcher:     launcher,
		catalogue:    catalogue,
		history:      store,
		notifier:     NewDialogNotifier(window),
		closeWindow:  window.Close,
	}

	window.SetTitle(appInfo.Title())
	window.SetCloseIntercept(ui.onCloseRequest)

	ui.setupUI()
	ui.play.SetUsername(settings.GetLastUsername())
	ui.refreshHistory()

	go ui.drainEvents()

	log.Debug("UI setup completed")
	return ui
}

// SetNotifier replaces the dialog notifier
func (ui *RootUI) SetNotifier(notifier Notifier) {
	ui.notifier = notifier
}

// setupUI creates and arranges all UI components. It can be called again to
// apply a language change; entered values are carried over.
func (ui *RootUI) setupUI() {
	username, selected := "", ""
	if ui.play != nil {
		username = ui.play.Username()
		selected = ui.play.SelectedVersion()
	}

	ui.play = NewPlayView(ui.localization, ui.onPlay, ui.onCancel)
	ui.settingsView = NewSettingsView(ui.settings, ui.window, ui.localization, SettingsCallbacks{
		OnSaved:        ui.onSettingsSaved,
		OnOpenFolder:   ui.onOpenGameFolder,
		OnOpenLogs:     ui.onOpenLogs,
		OnClearHistory: ui.onClearHistory,
	})

	ui.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(ui.localization.GetText(KeyPlay), theme.MediaPlayIcon(), ui.play.Content()),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyNews), theme.DocumentIcon(), NewNewsView(ui.localization)),
		container.NewTabItemWithIcon(ui.localization.GetText(KeySettings), theme.SettingsIcon(), ui.settingsView.Content()),
	)
	ui.tabs.SetTabLocation(container.TabLocationLeading)

	ui.window.SetContent(container.NewBorder(ui.createHeader(), nil, nil, nil, ui.tabs))

	if ui.versions != nil {
		if selected == "" {
			selected = ui.settings.GetLastVersion()
		}
		ui.play.SetVersions(ui.versions, selected)
	}
	if username != "" {
		ui.play.SetUsername(username)
	}
	ui.updateAccountLabel()
	ui.setRunning(ui.running)
}

// createHeader builds the logo bar shown above the tabs
func (ui *RootUI) createHeader() fyne.CanvasObject {
	logo := canvas.NewImageFromResource(LoadImageResource(ui.appInfo.LogoPath()))
	logo.SetMinSize(fyne.NewSize(HeaderLogoSize, HeaderLogoSize))
	logo.FillMode = canvas.ImageFillContain

	title := widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.accountLabel = widget.NewLabel("")
	ui.accountLabel.Importance = widget.LowImportance

	bar := container.NewBorder(nil, nil, container.NewHBox(logo, title), ui.accountLabel)
	background := canvas.NewRectangle(FlatSidebar)
	return container.NewStack(background, container.NewPadded(bar))
}

func (ui *RootUI) updateAccountLabel() {
	name := ui.settings.GetLastUsername()
	if name == "" {
		name = DefaultPlayerName
	}
	ui.accountLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyLoggedInAs), name))
}

// LoadVersions fetches the version catalogue and fills the version selection
// with the newest releases. On failure a warning is shown and the list stays empty.
func (ui *RootUI) LoadVersions(ctx context.Context) error {
	entries, err := ui.catalogue.FetchVersions(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load versions")
		ui.notifier.Warning(ui.localization.GetText(KeyError), fmt.Sprintf(ui.localization.GetText(KeyVersionsFailed), err))
		return err
	}

	releases := minecraft.LatestReleases(entries, minecraft.DefaultListLimit)
	ids := make([]string, 0, len(releases))
	for _, r := range releases {
		ids = append(ids, r.ID)
	}
	ui.versions = ids
	ui.play.SetVersions(ids, ui.settings.GetLastVersion())

	log.WithField("count", len(ids)).Info("Versions loaded")
	return nil
}

// onPlay validates the inputs and starts the launch worker
func (ui *RootUI) onPlay() {
	username := ui.play.Username()
	if err := launch.ValidateUsername(username); err != nil {
		ui.notifier.Warning(ui.localization.GetText(KeyWarning), ui.localization.GetText(KeyInvalidUsername))
		return
	}

	version := ui.play.SelectedVersion()
	if version == "" {
		ui.notifier.Warning(ui.localization.GetText(KeyWarning), ui.localization.GetText(KeyNoVersionSelected))
		return
	}

	req := model.LaunchRequest{
		VersionID: version,
		Username:  username,
		RAMMB:     ui.settings.GetRAM(),
		Demo:      ui.settings.GetDemo(),
	}
	if err := ui.launcher.Start(req); err != nil {
		if errors.Is(err, launch.ErrAlreadyRunning) {
			ui.notifier.Warning(ui.localization.GetText(KeyWarning), ui.localization.GetText(KeyAlreadyRunning))
			return
		}
		ui.notifier.Error(err)
		return
	}

	log.WithFields(log.Fields{"version": version, "ram": req.RAMMB, "demo": req.Demo}).Info("Launch requested")
	ui.settings.SetLastVersion(version)
	if req.HasUsername() {
		ui.settings.SetLastUsername(username)
		ui.updateAccountLabel()
	}
	ui.setRunning(true)
}

// onCancel asks the worker to stop
func (ui *RootUI) onCancel() {
	if ui.launcher.Cancel() {
		ui.play.DisableCancel()
	}
}

// setRunning locks the launch controls and the other tabs while a launch is in flight
func (ui *RootUI) setRunning(running bool) {
	ui.running = running
	ui.play.SetRunning(running)

	if running {
		ui.tabs.SelectIndex(TabPlay)
	}
	for i := range ui.tabs.Items {
		if i == TabPlay {
			continue
		}
		if running {
			ui.tabs.DisableIndex(i)
		} else {
			ui.tabs.EnableIndex(i)
		}
	}
}

// drainEvents applies worker events on the UI thread
func (ui *RootUI) drainEvents() {
	for event := range ui.launcher.Events() {
		e := event
		fyne.Do(func() {
			ui.handleEvent(e)
		})
	}
}

// handleEvent applies one worker event. Must run on the UI thread.
func (ui *RootUI) handleEvent(e launch.Event) {
	switch e.Kind {
	case launch.EventState:
		ui.setRunning(e.Running)
		if !e.Running {
			ui.refreshHistory()
		}
	case launch.EventStatus:
		if text, ok := ui.statusText(e.Status); ok {
			ui.play.SetStatus(text)
		}
	case launch.EventProgress:
		ui.play.SetProgress(e.Progress)
	case launch.EventExited:
		if e.ExitCode != 0 {
			ui.notifier.Warning(ui.localization.GetText(KeyLaunchFailedTitle), ui.localization.GetText(KeyLaunchFailedMessage))
		}
	case launch.EventFailed:
		ui.notifier.Error(e.Err)
	case launch.EventCancelled:
		ui.play.SetStatus(ui.localization.GetText(KeyStatusCancelled))
	}
}

// statusText maps a launch phase to its status line
func (ui *RootUI) statusText(status model.LaunchStatus) (string, bool) {
	keys := map[model.LaunchStatus]string{
		model.LaunchStatusInstalling: KeyStatusInstalling,
		model.LaunchStatusLaunching:  KeyStatusLaunching,
		model.LaunchStatusRunning:    KeyStatusRunning,
		model.LaunchStatusExited:     KeyStatusExited,
		model.LaunchStatusFailed:     KeyStatusFailed,
		model.LaunchStatusCancelled:  KeyStatusCancelled,
	}
	key, ok := keys[status]
	if !ok {
		return "", false
	}
	return ui.localization.GetText(key), true
}

// onCloseRequest asks for confirmation while a launch is in flight.
// Confirming closes the window; the game keeps running.
func (ui *RootUI) onCloseRequest() {
	if !ui.launcher.Running() {
		ui.closeWindow()
		return
	}
	ui.notifier.Confirm(
		ui.localization.GetText(KeyGameRunningTitle),
		ui.localization.GetText(KeyGameRunningMessage),
		func(confirmed bool) {
			if confirmed {
				log.Info("Closing launcher while the game is running")
				ui.closeWindow()
			}
		},
	)
}

// onSettingsSaved pushes runtime settings to the services
func (ui *RootUI) onSettingsSaved(languageChanged bool) {
	ui.launcher.SetJavaExecutable(ui.settings.GetJavaPath())
	ui.catalogue.SetConcurrency(ui.settings.GetDownloadThreads())

	if languageChanged {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.setupUI()
		ui.refreshHistory()
		ui.tabs.SelectIndex(TabSettings)
	}
	ui.notifier.Info(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved))
}

func (ui *RootUI) onOpenGameFolder() {
	if err := platform.OpenFolder(ui.settings.GetGameDirectory()); err != nil {
		log.WithError(err).Warn("Failed to open game folder")
		ui.notifier.Warning(ui.localization.GetText(KeyError), ui.localization.GetText(KeyErrorOpeningFolder)+": "+err.Error())
	}
}

func (ui *RootUI) onOpenLogs() {
	if err := platform.OpenFileInManager(platform.LatestLogPath(ui.settings.GetGameDirectory())); err != nil {
		log.WithError(err).Warn("Failed to open game log")
		ui.notifier.Warning(ui.localization.GetText(KeyError), ui.localization.GetText(KeyErrorOpeningFolder)+": "+err.Error())
	}
}

func (ui *RootUI) onClearHistory() {
	if ui.history == nil {
		return
	}
	if err := ui.history.Clear(); err != nil {
		ui.notifier.Error(err)
		return
	}
	ui.refreshHistory()
}

// refreshHistory reloads the recent launches list
func (ui *RootUI) refreshHistory() {
	if ui.history == nil {
		return
	}
	records, err := ui.history.Recent(history.DefaultRecentLimit)
	if err != nil {
		log.WithError(err).Warn("Failed to read launch history")
		return
	}
	ui.play.history.SetRecords(records)
}
