package config

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/flat-launcher/internal/minecraft"
)

// Settings keys for Fyne preferences
const (
	KeyGameDirectory   = "game_directory"
	KeyRAM             = "ram_mb"
	KeyDemo            = "demo_mode"
	KeyJavaPath        = "java_path"
	KeyLanguage        = "app_language"
	KeyLastVersion     = "last_version"
	KeyLastUsername    = "last_username"
	KeyDownloadThreads = "download_threads"
)

// Default values
const (
	DefaultRAM             = 2048
	DefaultDemo            = false
	DefaultLanguage        = "system"
	DefaultDownloadThreads = minecraft.DefaultConcurrency
	MaxDownloadThreads     = 32
)

// RAMOptions are the selectable heap sizes in megabytes
var RAMOptions = []int{1024, 2048, 3072, 4096, 5120}

// Settings manages application configuration
type Settings struct {
	app         fyne.App
	defaultGame string
}

// NewSettings creates a new settings manager. defaultGameDir is used while no
// game directory has been chosen.
func NewSettings(app fyne.App, defaultGameDir string) *Settings {
	return &Settings{app: app, defaultGame: defaultGameDir}
}

// GetGameDirectory returns the configured game directory
func (s *Settings) GetGameDirectory() string {
	dir := s.app.Preferences().String(KeyGameDirectory)
	if dir == "" {
		s.SetGameDirectory(s.defaultGame)
		return s.defaultGame
	}
	return dir
}

// SetGameDirectory sets the game directory; an empty value restores the default
func (s *Settings) SetGameDirectory(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = s.defaultGame
	}
	s.app.Preferences().SetString(KeyGameDirectory, dir)
}

// GetRAM returns the heap size in megabytes
func (s *Settings) GetRAM() int {
	value := s.app.Preferences().Int(KeyRAM)
	if !isRAMOption(value) {
		s.SetRAM(DefaultRAM)
		return DefaultRAM
	}
	return value
}

// SetRAM stores the heap size, snapping to the nearest available option
func (s *Settings) SetRAM(mb int) {
	s.app.Preferences().SetInt(KeyRAM, nearestRAMOption(mb))
}

// GetRAMOptions returns the selectable heap sizes as labels
func (s *Settings) GetRAMOptions() []string {
	labels := make([]string, 0, len(RAMOptions))
	for _, mb := range RAMOptions {
		labels = append(labels, strconv.Itoa(mb))
	}
	return labels
}

// GetDemo returns whether the game starts in demo mode
func (s *Settings) GetDemo() bool {
	return s.app.Preferences().BoolWithFallback(KeyDemo, DefaultDemo)
}

// SetDemo sets demo mode
func (s *Settings) SetDemo(demo bool) {
	s.app.Preferences().SetBool(KeyDemo, demo)
}

// GetJavaPath returns the java executable, "java" when unset
func (s *Settings) GetJavaPath() string {
	path := s.app.Preferences().String(KeyJavaPath)
	if path == "" {
		return minecraft.DefaultJavaExecutable
	}
	return path
}

// SetJavaPath sets the java executable; an empty value means "java" from PATH
func (s *Settings) SetJavaPath(path string) {
	path = strings.TrimSpace(path)
	if path == minecraft.DefaultJavaExecutable {
		path = ""
	}
	s.app.Preferences().SetString(KeyJavaPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"de":     "Deutsch",
	}
}

// GetLastVersion returns the version launched most recently
func (s *Settings) GetLastVersion() string {
	return s.app.Preferences().String(KeyLastVersion)
}

// SetLastVersion remembers the version launched most recently
func (s *Settings) SetLastVersion(id string) {
	s.app.Preferences().SetString(KeyLastVersion, id)
}

// GetLastUsername returns the username used most recently
func (s *Settings) GetLastUsername() string {
	return s.app.Preferences().String(KeyLastUsername)
}

// SetLastUsername remembers the username used most recently
func (s *Settings) SetLastUsername(name string) {
	s.app.Preferences().SetString(KeyLastUsername, strings.TrimSpace(name))
}

// GetDownloadThreads returns how many files the installer fetches in parallel
func (s *Settings) GetDownloadThreads() int {
	value := s.app.Preferences().Int(KeyDownloadThreads)
	if value <= 0 {
		s.SetDownloadThreads(DefaultDownloadThreads)
		return DefaultDownloadThreads
	}
	return value
}

// SetDownloadThreads sets the installer parallelism
func (s *Settings) SetDownloadThreads(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxDownloadThreads {
		count = MaxDownloadThreads
	}
	s.app.Preferences().SetInt(KeyDownloadThreads, count)
}

func isRAMOption(mb int) bool {
	for _, option := range RAMOptions {
		if option == mb {
			return true
		}
	}
	return false
}

func nearestRAMOption(mb int) int {
	best := RAMOptions[0]
	for _, option := range RAMOptions {
		if abs(option-mb) < abs(best-mb) {
			best = option
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
