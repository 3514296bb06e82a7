package config

import (
	"fmt"
	"path/filepath"

	"github.com/ytget/flat-launcher/internal/minecraft"
)

// Application identity
const (
	AppID   = "com.ytget.flat-launcher"
	AppName = "FlatLauncher"

	AssetsDirectoryName = "assets"
	LogoFileName        = "logo.png"
	IconFileName        = "icon.png"
)

// App holds process-wide values fixed at startup
type App struct {
	ID              string
	Name            string
	Version         string
	Debug           bool
	GameDirectory   string // default, before user settings are applied
	AssetsDirectory string
}

// NewApp returns the application description for the given build
func NewApp(version string, debug bool) App {
	return App{
		ID:              AppID,
		Name:            AppName,
		Version:         version,
		Debug:           debug,
		GameDirectory:   minecraft.LauncherDirectory(AppName),
		AssetsDirectory: AssetsDirectoryName,
	}
}

// Title is the main window title
func (a App) Title() string {
	return fmt.Sprintf("%s %s", a.Name, a.Version)
}

// LogoPath is the sidebar logo image
func (a App) LogoPath() string {
	return filepath.Join(a.AssetsDirectory, LogoFileName)
}

// IconPath is the window icon image
func (a App) IconPath() string {
	return filepath.Join(a.AssetsDirectory, IconFileName)
}
