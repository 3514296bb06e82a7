package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/flat-launcher/internal/config"
	"github.com/ytget/flat-launcher/internal/history"
	"github.com/ytget/flat-launcher/internal/launch"
	"github.com/ytget/flat-launcher/internal/minecraft"
	"github.com/ytget/flat-launcher/internal/model"
)

// fakeLauncher records requests instead of launching
type fakeLauncher struct {
	mu        sync.Mutex
	requests  []model.LaunchRequest
	running   bool
	startErr  error
	cancelled int
	java      string
	events    chan launch.Event
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{events: make(chan launch.Event)}
}

func (f *fakeLauncher) Start(req model.LaunchRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.requests = append(f.requests, req)
	f.running = true
	return nil
}

func (f *fakeLauncher) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
	return f.running
}

func (f *fakeLauncher) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeLauncher) Status() model.LaunchStatus {
	return model.LaunchStatusIdle
}

func (f *fakeLauncher) Events() <-chan launch.Event {
	return f.events
}

func (f *fakeLauncher) SetJavaExecutable(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.java = path
}

// fakeCatalogue serves a fixed version list
type fakeCatalogue struct {
	entries     []minecraft.VersionEntry
	err         error
	concurrency int
}

func (f *fakeCatalogue) FetchVersions(ctx context.Context) ([]minecraft.VersionEntry, error) {
	return f.entries, f.err
}

func (f *fakeCatalogue) SetConcurrency(n int) {
	f.concurrency = n
}

// fakeHistory keeps records in memory
type fakeHistory struct {
	records []history.Record
	reads   int
}

func (f *fakeHistory) Recent(limit int) ([]history.Record, error) {
	f.reads++
	return f.records, nil
}

func (f *fakeHistory) Clear() error {
	f.records = nil
	return nil
}

// recordingNotifier counts messages instead of showing dialogs
type recordingNotifier struct {
	warnings []string
	errors   []error
	infos    []string
	confirms []func(bool)
}

func (n *recordingNotifier) Warning(title, message string) {
	n.warnings = append(n.warnings, message)
}

func (n *recordingNotifier) Error(err error) {
	n.errors = append(n.errors, err)
}

func (n *recordingNotifier) Info(title, message string) {
	n.infos = append(n.infos, message)
}

func (n *recordingNotifier) Confirm(title, message string, callback func(bool)) {
	n.confirms = append(n.confirms, callback)
}

type testRoot struct {
	ui        *RootUI
	app       fyne.App
	launcher  *fakeLauncher
	catalogue *fakeCatalogue
	history   *fakeHistory
	notifier  *recordingNotifier
	closed    int
}

func newTestRoot(t *testing.T) *testRoot {
	t.Helper()
	app := test.NewApp()
	window := app.NewWindow("test")

	tr := &testRoot{
		app:       app,
		launcher:  newFakeLauncher(),
		catalogue: &fakeCatalogue{entries: releases(25)},
		history:   &fakeHistory{},
		notifier:  &recordingNotifier{},
	}
	settings := config.NewSettings(app, t.TempDir())
	appInfo := config.NewApp("test", false)
	appInfo.AssetsDirectory = t.TempDir()

	tr.ui = NewRootUI(window, appInfo, settings, tr.launcher, tr.catalogue, tr.history)
	tr.ui.SetNotifier(tr.notifier)
	tr.ui.closeWindow = func() { tr.closed++ }
	return tr
}

// releases returns n releases, "1.<n-1>" being the newest, interleaved with snapshots
func releases(n int) []minecraft.VersionEntry {
	base := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	var entries []minecraft.VersionEntry
	for i := 0; i < n; i++ {
		entries = append(entries,
			minecraft.VersionEntry{ID: fmt.Sprintf("1.%d", i), Type: minecraft.TypeRelease, ReleaseTime: base.AddDate(0, i, 0)},
			minecraft.VersionEntry{ID: fmt.Sprintf("snap%d", i), Type: minecraft.TypeSnapshot, ReleaseTime: base.AddDate(0, i, 1)},
		)
	}
	return entries
}

func TestLoadVersions_TopReleases(t *testing.T) {
	tr := newTestRoot(t)

	if err := tr.ui.LoadVersions(context.Background()); err != nil {
		t.Fatalf("LoadVersions() error = %v", err)
	}

	options := tr.ui.play.versionSelect.Options
	if len(options) != minecraft.DefaultListLimit {
		t.Fatalf("version options = %d, expected %d", len(options), minecraft.DefaultListLimit)
	}
	if options[0] != "1.24" || options[len(options)-1] != "1.5" {
		t.Errorf("version options = %v, expected 1.24 down to 1.5", options)
	}
	if got := tr.ui.play.SelectedVersion(); got != "1.24" {
		t.Errorf("selected version = %q, expected newest 1.24", got)
	}
	if len(tr.notifier.warnings) != 0 {
		t.Errorf("unexpected warnings: %v", tr.notifier.warnings)
	}
}

func TestLoadVersions_PreselectsLastVersion(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.settings.SetLastVersion("1.10")

	if err := tr.ui.LoadVersions(context.Background()); err != nil {
		t.Fatalf("LoadVersions() error = %v", err)
	}
	if got := tr.ui.play.SelectedVersion(); got != "1.10" {
		t.Errorf("selected version = %q, expected last launched 1.10", got)
	}
}

func TestLoadVersions_FailureWarnsOnce(t *testing.T) {
	tr := newTestRoot(t)
	tr.catalogue.err = errors.New("no route to host")

	if err := tr.ui.LoadVersions(context.Background()); err == nil {
		t.Fatal("LoadVersions() expected error")
	}
	if len(tr.notifier.warnings) != 1 {
		t.Errorf("warnings = %d, expected 1", len(tr.notifier.warnings))
	}
	if len(tr.ui.play.versionSelect.Options) != 0 {
		t.Errorf("version options = %v, expected empty", tr.ui.play.versionSelect.Options)
	}
}

func TestPlay_StartsLauncher(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.LoadVersions(context.Background())
	tr.ui.settings.SetRAM(4096)
	tr.ui.settings.SetDemo(true)
	tr.ui.play.SetUsername("Steve")

	tr.ui.onPlay()

	if len(tr.launcher.requests) != 1 {
		t.Fatalf("requests = %d, expected 1", len(tr.launcher.requests))
	}
	expected := model.LaunchRequest{VersionID: "1.24", Username: "Steve", RAMMB: 4096, Demo: true}
	if tr.launcher.requests[0] != expected {
		t.Errorf("request = %+v, expected %+v", tr.launcher.requests[0], expected)
	}
	if tr.ui.settings.GetLastVersion() != "1.24" || tr.ui.settings.GetLastUsername() != "Steve" {
		t.Error("last version and username were not remembered")
	}
	if !tr.ui.play.playButton.Disabled() {
		t.Error("play button should be disabled after starting")
	}
}

func TestPlay_BlankUsernameIsPassedThrough(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.LoadVersions(context.Background())
	tr.ui.play.SetUsername("")

	tr.ui.onPlay()

	if len(tr.launcher.requests) != 1 {
		t.Fatalf("requests = %d, expected 1", len(tr.launcher.requests))
	}
	if tr.launcher.requests[0].HasUsername() {
		t.Error("blank username should be left for the worker to generate")
	}
}

func TestPlay_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		versions  bool
		startErr  error
		warnings  int
		errors    int
		requested int
	}{
		{"invalid username", "bad name!", true, nil, 1, 0, 0},
		{"too long username", "abcdefghijklmnopq", true, nil, 1, 0, 0},
		{"no version", "Steve", false, nil, 1, 0, 0},
		{"already running", "Steve", true, launch.ErrAlreadyRunning, 1, 0, 0},
		{"start error", "Steve", true, errors.New("boom"), 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRoot(t)
			if tt.versions {
				tr.ui.LoadVersions(context.Background())
			}
			tr.launcher.startErr = tt.startErr
			tr.ui.play.SetUsername(tt.username)

			tr.ui.onPlay()

			if len(tr.notifier.warnings) != tt.warnings {
				t.Errorf("warnings = %d, expected %d", len(tr.notifier.warnings), tt.warnings)
			}
			if len(tr.notifier.errors) != tt.errors {
				t.Errorf("errors = %d, expected %d", len(tr.notifier.errors), tt.errors)
			}
			if len(tr.launcher.requests) != tt.requested {
				t.Errorf("requests = %d, expected %d", len(tr.launcher.requests), tt.requested)
			}
			if tr.ui.play.playButton.Disabled() {
				t.Error("play button should stay enabled after a rejected launch")
			}
		})
	}
}

func TestHandleEvent_LocksNavigationWhileRunning(t *testing.T) {
	tr := newTestRoot(t)

	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})

	if !tr.ui.play.playButton.Disabled() {
		t.Error("play button should be disabled while running")
	}
	if tr.ui.tabs.Items[TabPlay].Disabled() {
		t.Error("play tab should stay enabled")
	}
	for _, i := range []int{TabNews, TabSettings} {
		if !tr.ui.tabs.Items[i].Disabled() {
			t.Errorf("tab %d should be disabled while running", i)
		}
	}
	if !tr.ui.play.progressBar.Visible() || !tr.ui.play.cancelButton.Visible() {
		t.Error("progress bar and cancel button should be visible while running")
	}

	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: false})

	if tr.ui.play.playButton.Disabled() {
		t.Error("play button should be enabled after completion")
	}
	for _, i := range []int{TabNews, TabSettings} {
		if tr.ui.tabs.Items[i].Disabled() {
			t.Errorf("tab %d should be enabled after completion", i)
		}
	}
	if tr.ui.play.cancelButton.Visible() {
		t.Error("cancel button should be hidden after completion")
	}
}

func TestHandleEvent_Progress(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})

	tr.ui.handleEvent(launch.Event{Kind: launch.EventProgress, Progress: model.Progress{Current: 3, Max: 12, Label: "Install assets"}})

	if tr.ui.play.progressBar.Max != 12 || tr.ui.play.progressBar.Value != 3 {
		t.Errorf("progress bar = %v/%v, expected 3/12", tr.ui.play.progressBar.Value, tr.ui.play.progressBar.Max)
	}
	if tr.ui.play.progressLabel.Text != "Install assets" {
		t.Errorf("progress label = %q, expected \"Install assets\"", tr.ui.play.progressLabel.Text)
	}

	tr.ui.handleEvent(launch.Event{Kind: launch.EventProgress, Progress: model.Progress{Label: "Download 1.20.1.json"}})
	if tr.ui.play.progressBar.Max != 1 || tr.ui.play.progressBar.Value != 0 {
		t.Errorf("progress bar with unknown max = %v/%v, expected 0/1", tr.ui.play.progressBar.Value, tr.ui.play.progressBar.Max)
	}
}

func TestHandleEvent_ExitCodeWarnings(t *testing.T) {
	tests := []struct {
		code     int
		warnings int
	}{
		{0, 0},
		{1, 1},
		{-1, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code %d", tt.code), func(t *testing.T) {
			tr := newTestRoot(t)

			tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})
			tr.ui.handleEvent(launch.Event{Kind: launch.EventExited, ExitCode: tt.code})
			tr.ui.handleEvent(launch.Event{Kind: launch.EventStatus, Status: model.LaunchStatusExited})
			tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: false})

			if len(tr.notifier.warnings) != tt.warnings {
				t.Errorf("warnings = %d, expected %d", len(tr.notifier.warnings), tt.warnings)
			}
			if len(tr.notifier.errors) != 0 {
				t.Errorf("unexpected errors: %v", tr.notifier.errors)
			}
		})
	}
}

func TestHandleEvent_FailedShowsOneError(t *testing.T) {
	tr := newTestRoot(t)
	boom := errors.New("checksum mismatch")

	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})
	tr.ui.handleEvent(launch.Event{Kind: launch.EventFailed, Err: boom})
	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: false})

	if len(tr.notifier.errors) != 1 || !errors.Is(tr.notifier.errors[0], boom) {
		t.Errorf("errors = %v, expected exactly %v", tr.notifier.errors, boom)
	}
	if len(tr.notifier.warnings) != 0 {
		t.Error("failure should not also show an exit warning")
	}
}

func TestHandleEvent_CancelledIsSilent(t *testing.T) {
	tr := newTestRoot(t)

	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})
	tr.ui.handleEvent(launch.Event{Kind: launch.EventCancelled})
	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: false})

	if len(tr.notifier.warnings)+len(tr.notifier.errors) != 0 {
		t.Error("cancellation should not show a dialog")
	}
	if got := tr.ui.play.progressLabel.Text; got != tr.ui.localization.GetText(KeyStatusCancelled) {
		t.Errorf("status = %q, expected cancelled status", got)
	}
}

func TestHandleEvent_StateRefreshesHistory(t *testing.T) {
	tr := newTestRoot(t)
	reads := tr.history.reads
	tr.history.records = []history.Record{{ID: "a", VersionID: "1.20.1", Status: model.LaunchStatusExited, StartedAt: time.Now()}}

	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: false})

	if tr.history.reads != reads+1 {
		t.Errorf("history reads = %d, expected %d", tr.history.reads, reads+1)
	}
	if tr.ui.play.history.Len() != 1 {
		t.Errorf("history rows = %d, expected 1", tr.ui.play.history.Len())
	}
}

func TestCancel(t *testing.T) {
	tr := newTestRoot(t)
	tr.launcher.running = true
	tr.ui.handleEvent(launch.Event{Kind: launch.EventState, Running: true})

	tr.ui.onCancel()

	if tr.launcher.cancelled != 1 {
		t.Errorf("cancel calls = %d, expected 1", tr.launcher.cancelled)
	}
	if !tr.ui.play.cancelButton.Disabled() {
		t.Error("cancel button should be disabled after cancelling")
	}
}

func TestCloseRequest(t *testing.T) {
	t.Run("idle closes immediately", func(t *testing.T) {
		tr := newTestRoot(t)

		tr.ui.onCloseRequest()

		if tr.closed != 1 || len(tr.notifier.confirms) != 0 {
			t.Errorf("closed = %d, confirms = %d, expected 1 and 0", tr.closed, len(tr.notifier.confirms))
		}
	})

	t.Run("running asks and declining keeps the window", func(t *testing.T) {
		tr := newTestRoot(t)
		tr.launcher.running = true

		tr.ui.onCloseRequest()
		if len(tr.notifier.confirms) != 1 {
			t.Fatalf("confirms = %d, expected 1", len(tr.notifier.confirms))
		}
		tr.notifier.confirms[0](false)

		if tr.closed != 0 {
			t.Error("window closed after declining")
		}
		if tr.launcher.cancelled != 0 || !tr.launcher.Running() {
			t.Error("declining must leave the worker undisturbed")
		}
	})

	t.Run("running and confirming closes without cancelling", func(t *testing.T) {
		tr := newTestRoot(t)
		tr.launcher.running = true

		tr.ui.onCloseRequest()
		tr.notifier.confirms[0](true)

		if tr.closed != 1 {
			t.Errorf("closed = %d, expected 1", tr.closed)
		}
		if tr.launcher.cancelled != 0 {
			t.Error("closing the window must not cancel the game")
		}
	})
}

func TestSettingsSaved_AppliesRuntimeSettings(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.settings.SetJavaPath("/opt/jdk/bin/java")
	tr.ui.settings.SetDownloadThreads(4)

	tr.ui.onSettingsSaved(false)

	if tr.launcher.java != "/opt/jdk/bin/java" {
		t.Errorf("java = %q, expected /opt/jdk/bin/java", tr.launcher.java)
	}
	if tr.catalogue.concurrency != 4 {
		t.Errorf("concurrency = %d, expected 4", tr.catalogue.concurrency)
	}
	if len(tr.notifier.infos) != 1 {
		t.Errorf("infos = %d, expected 1", len(tr.notifier.infos))
	}
}

func TestSettingsSaved_LanguageRebuildKeepsInputs(t *testing.T) {
	tr := newTestRoot(t)
	tr.ui.LoadVersions(context.Background())
	tr.ui.play.versionSelect.SetSelected("1.12")
	tr.ui.play.SetUsername("Alex")

	tr.ui.settings.SetLanguage("de")
	tr.ui.onSettingsSaved(true)

	if tr.ui.localization.GetCurrentLanguage() != "de" {
		t.Errorf("language = %s, expected de", tr.ui.localization.GetCurrentLanguage())
	}
	if tr.ui.play.playButton.Text != "SPIELEN" {
		t.Errorf("play button = %q, expected German text", tr.ui.play.playButton.Text)
	}
	if tr.ui.play.SelectedVersion() != "1.12" || tr.ui.play.Username() != "Alex" {
		t.Errorf("inputs after rebuild = %q/%q, expected 1.12/Alex", tr.ui.play.SelectedVersion(), tr.ui.play.Username())
	}
}

func TestClearHistory(t *testing.T) {
	tr := newTestRoot(t)
	tr.history.records = []history.Record{{ID: "a", VersionID: "1.20.1", StartedAt: time.Now()}}
	tr.ui.refreshHistory()

	tr.ui.onClearHistory()

	if tr.ui.play.history.Len() != 0 {
		t.Errorf("history rows = %d, expected 0", tr.ui.play.history.Len())
	}
}
