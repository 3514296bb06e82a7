package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/flat-launcher/internal/config"
	"github.com/ytget/flat-launcher/internal/history"
	"github.com/ytget/flat-launcher/internal/model"
)

func TestFormatRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		record   history.Record
		expected string
	}{
		{
			"exited",
			history.Record{VersionID: "1.20.1", Username: "Steve", Status: model.LaunchStatusExited, ExitCode: 1, StartedAt: now.Add(-5 * time.Minute)},
			"1.20.1 · Steve · Exited (1) · 5m ago",
		},
		{
			"failed without username",
			history.Record{VersionID: "1.8.9", Status: model.LaunchStatusFailed, StartedAt: now.Add(-3 * time.Hour)},
			"1.8.9 · — · Failed · 3h ago",
		},
		{
			"cancelled recently",
			history.Record{VersionID: "1.16.5", Username: "Alex", Status: model.LaunchStatusCancelled, StartedAt: now.Add(-10 * time.Second)},
			"1.16.5 · Alex · Cancelled · just now",
		},
		{
			"days old",
			history.Record{VersionID: "1.12.2", Username: "Alex", Status: model.LaunchStatusExited, StartedAt: now.Add(-50 * time.Hour)},
			"1.12.2 · Alex · Exited (0) · 2d ago",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecord(tt.record, now); got != tt.expected {
				t.Errorf("FormatRecord() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestHistoryList_SetRecords(t *testing.T) {
	test.NewApp()
	list := NewHistoryList(NewLocalization())

	if list.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", list.Len())
	}

	list.SetRecords([]history.Record{
		{ID: "a", VersionID: "1.20.1", StartedAt: time.Now()},
		{ID: "b", VersionID: "1.19.4", StartedAt: time.Now()},
	})
	if list.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", list.Len())
	}

	list.SetRecords(nil)
	if list.Len() != 0 {
		t.Errorf("Len() after clear = %d, expected 0", list.Len())
	}
}

func TestLocalization(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("default language = %s, expected en", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyPlayButton); got != "PLAY" {
		t.Errorf("GetText(KeyPlayButton) = %q, expected PLAY", got)
	}

	l.SetLanguage("ru")
	if got := l.GetText(KeyPlayButton); got != "ИГРАТЬ" {
		t.Errorf("GetText(KeyPlayButton) in ru = %q, expected ИГРАТЬ", got)
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("unknown language changed current language to %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("system language = %s, expected en", l.GetCurrentLanguage())
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("GetText(missing_key) = %q, expected the key itself", got)
	}
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		for lang := range l.GetAvailableLanguages() {
			if _, ok := l.texts[lang][key]; !ok {
				t.Errorf("language %s is missing %s", lang, key)
			}
		}
	}
}

func TestPlayView_SetVersions(t *testing.T) {
	test.NewApp()
	v := NewPlayView(NewLocalization(), func() {}, func() {})

	v.SetVersions([]string{"1.20.1", "1.19.4", "1.18.2"}, "1.19.4")
	if v.SelectedVersion() != "1.19.4" {
		t.Errorf("SelectedVersion() = %q, expected 1.19.4", v.SelectedVersion())
	}

	v.SetVersions([]string{"1.20.1", "1.19.4"}, "1.8.9")
	if v.SelectedVersion() != "1.20.1" {
		t.Errorf("SelectedVersion() with unknown preference = %q, expected 1.20.1", v.SelectedVersion())
	}

	v.SetVersions(nil, "1.20.1")
	if v.SelectedVersion() != "" {
		t.Errorf("SelectedVersion() with no versions = %q, expected empty", v.SelectedVersion())
	}
}

func TestSettingsView_Save(t *testing.T) {
	app := test.NewApp()
	window := app.NewWindow("test")
	settings := config.NewSettings(app, t.TempDir())

	var saved []bool
	sv := NewSettingsView(settings, window, NewLocalization(), SettingsCallbacks{
		OnSaved: func(languageChanged bool) { saved = append(saved, languageChanged) },
	})

	sv.javaEntry.SetText("/usr/lib/jvm/bin/java")
	sv.threadsSelect.SetSelected("16")
	sv.onSave()

	if len(saved) != 1 || saved[0] {
		t.Fatalf("OnSaved calls = %v, expected one call without language change", saved)
	}
	if settings.GetJavaPath() != "/usr/lib/jvm/bin/java" {
		t.Errorf("java path = %q, expected /usr/lib/jvm/bin/java", settings.GetJavaPath())
	}
	if settings.GetDownloadThreads() != 16 {
		t.Errorf("download threads = %d, expected 16", settings.GetDownloadThreads())
	}

	sv.languageSelect.SetSelected("Deutsch")
	sv.onSave()

	if len(saved) != 2 || !saved[1] {
		t.Errorf("OnSaved calls = %v, expected language change on second save", saved)
	}
	if settings.GetLanguage() != "de" {
		t.Errorf("language = %s, expected de", settings.GetLanguage())
	}
}

func TestSettingsView_ImmediateSettings(t *testing.T) {
	app := test.NewApp()
	settings := config.NewSettings(app, t.TempDir())
	sv := NewSettingsView(settings, app.NewWindow("test"), NewLocalization(), SettingsCallbacks{})

	sv.ramSelect.SetSelected("4096")
	sv.demoCheck.SetChecked(true)

	if settings.GetRAM() != 4096 {
		t.Errorf("RAM = %d, expected 4096", settings.GetRAM())
	}
	if !settings.GetDemo() {
		t.Error("demo mode should be applied without saving")
	}
}
