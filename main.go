package main

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/flat-launcher/internal/config"
	"github.com/ytget/flat-launcher/internal/history"
	"github.com/ytget/flat-launcher/internal/launch"
	"github.com/ytget/flat-launcher/internal/minecraft"
	"github.com/ytget/flat-launcher/internal/platform"
	"github.com/ytget/flat-launcher/internal/ui"
)

// Set during build via -ldflags "-X main.version=X.Y -X main.debugging=true"
var (
	version   = "1.0"
	debugging = "false"
)

func main() {
	appInfo := config.NewApp(version, debugging == "true")
	setupLogging(appInfo.Debug)
	log.WithField("version", version).Info("FlatLauncher starting")

	// Create new Fyne app
	myApp := app.NewWithID(appInfo.ID)
	myApp.Settings().SetTheme(ui.NewFlatTheme())

	if created, err := platform.EnsurePlaceholderAssets(appInfo.AssetsDirectory, config.LogoFileName, config.IconFileName); err != nil {
		log.WithError(err).Warn("Failed to create placeholder assets")
	} else if len(created) > 0 {
		log.WithField("files", created).Info("Created placeholder assets")
	}

	myWindow := myApp.NewWindow(appInfo.Title())
	myWindow.SetIcon(ui.LoadImageResource(appInfo.IconPath()))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp, appInfo.GameDirectory)
	gameDir := settings.GetGameDirectory()
	if err := platform.CreateDirectoryIfNotExists(gameDir); err != nil {
		log.WithError(err).WithField("dir", gameDir).Error("Failed to create game directory")
	}

	client := minecraft.NewClient()
	client.SetConcurrency(settings.GetDownloadThreads())

	launcher := launch.NewService(launch.Config{
		GameDirectory:   gameDir,
		JavaExecutable:  settings.GetJavaPath(),
		LauncherName:    minecraft.DefaultLauncherName,
		LauncherVersion: version,
	}, client, client)

	var store ui.HistoryStore
	if db, err := history.OpenInDirectory(gameDir); err != nil {
		log.WithError(err).Warn("Launch history disabled")
	} else {
		defer db.Close()
		launcher.SetRecorder(db)
		store = db
	}

	// Create and setup UI
	root := ui.NewRootUI(myWindow, appInfo, settings, launcher, client, store)

	ctx, cancel := context.WithTimeout(context.Background(), ui.VersionLoadTimeout)
	if err := root.LoadVersions(ctx); err != nil {
		log.WithError(err).Error("Version list unavailable")
	}
	cancel()

	// Show and run
	myWindow.ShowAndRun()
	log.Info("FlatLauncher stopped")
}

func setupLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
