package launch

import (
	"context"
	"time"

	"github.com/ytget/flat-launcher/internal/minecraft"
	"github.com/ytget/flat-launcher/internal/model"
)

// Installer makes a version available on disk
type Installer interface {
	IsInstalled(dir, versionID string) bool
	Install(ctx context.Context, versionID, dir string, cb minecraft.Callback) error
}

// CommandBuilder turns an installed version into an executable argv
type CommandBuilder interface {
	BuildCommand(dir, versionID string, opts minecraft.Options) ([]string, error)
}

// ProcessRunner starts argv in dir and blocks until it exits. A non-zero exit
// status is reported through the returned code, not as an error.
type ProcessRunner func(ctx context.Context, argv []string, dir string) (int, error)

// Outcome describes how a launch attempt ended
type Outcome struct {
	Username   string
	Status     model.LaunchStatus
	ExitCode   int
	Err        error
	FinishedAt time.Time
}

// Recorder persists launch attempts. Errors are logged and otherwise ignored.
type Recorder interface {
	RecordStart(id string, req model.LaunchRequest, at time.Time) error
	RecordFinish(id string, out Outcome) error
}

// Launcher is the worker surface used by the UI
type Launcher interface {
	Start(req model.LaunchRequest) error
	Cancel() bool
	Running() bool
	Status() model.LaunchStatus
	Events() <-chan Event
	SetJavaExecutable(path string)
}
