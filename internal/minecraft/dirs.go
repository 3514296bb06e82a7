package minecraft

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultDirectoryName is the folder name of the vanilla game directory
const DefaultDirectoryName = "minecraft"

// DefaultDirectory returns the platform's default Minecraft directory:
// %APPDATA%\.minecraft on Windows, ~/Library/Application Support/minecraft on
// macOS and ~/.minecraft elsewhere.
func DefaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "."+DefaultDirectoryName)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", DefaultDirectoryName)
	default:
		return filepath.Join(home, "."+DefaultDirectoryName)
	}
}

// LauncherDirectory returns the default Minecraft directory with its
// "minecraft" component renamed to name, so that a custom launcher keeps its
// installations apart from the vanilla launcher.
func LauncherDirectory(name string) string {
	dir := DefaultDirectory()
	base := filepath.Base(dir)
	return filepath.Join(filepath.Dir(dir), strings.Replace(base, DefaultDirectoryName, name, 1))
}
