package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/flat-launcher/internal/minecraft"
	"github.com/ytget/flat-launcher/internal/model"
)

// EventBufferSize is the capacity of the worker's event channel
const EventBufferSize = 256

// ProcessWaitDelay bounds how long the game's output pipes are drained after it exits
const ProcessWaitDelay = 5 * time.Second

// ErrAlreadyRunning is returned by Start while another launch is in flight
var ErrAlreadyRunning = errors.New("a launch is already running")

// ErrNoVersion is returned when a request names no version
var ErrNoVersion = errors.New("no version selected")

// Config holds the worker's fixed parameters
type Config struct {
	GameDirectory   string
	JavaExecutable  string
	LauncherName    string
	LauncherVersion string
}

// Service runs launch requests one at a time
type Service struct {
	config    Config
	installer Installer
	builder   CommandBuilder
	runner    ProcessRunner
	recorder  Recorder

	newUsername  func() string
	newSessionID func() string

	events  chan Event
	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	status model.LaunchStatus
}

// NewService creates a launch worker. installer and builder are usually the
// same *minecraft.Client.
func NewService(config Config, installer Installer, builder CommandBuilder) *Service {
	if config.JavaExecutable == "" {
		config.JavaExecutable = minecraft.DefaultJavaExecutable
	}
	if config.LauncherName == "" {
		config.LauncherName = minecraft.DefaultLauncherName
	}
	return &Service{
		config:       config,
		installer:    installer,
		builder:      builder,
		runner:       RunProcess,
		newUsername:  GenerateUsername,
		newSessionID: newSessionID,
		events:       make(chan Event, EventBufferSize),
		status:       model.LaunchStatusIdle,
	}
}

// SetProcessRunner replaces the function used to spawn the game
func (s *Service) SetProcessRunner(runner ProcessRunner) {
	s.runner = runner
}

// SetRecorder enables launch history
func (s *Service) SetRecorder(recorder Recorder) {
	s.recorder = recorder
}

// SetJavaExecutable changes the java binary used by subsequent launches
func (s *Service) SetJavaExecutable(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = minecraft.DefaultJavaExecutable
	}
	s.mu.Lock()
	s.config.JavaExecutable = path
	s.mu.Unlock()
}

// Events returns the channel the worker publishes to. It is never closed.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Running reports whether a launch is in flight
func (s *Service) Running() bool {
	return s.running.Load()
}

// Status returns the phase of the current or last launch
func (s *Service) Status() model.LaunchStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start begins a launch on a new goroutine
func (s *Service) Start(req model.LaunchRequest) error {
	if strings.TrimSpace(req.VersionID) == "" {
		return ErrNoVersion
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(ctx, req)
	return nil
}

// Cancel stops the launch in flight, killing the game if it was spawned.
// It reports whether there was anything to cancel.
func (s *Service) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil || !s.running.Load() {
		return false
	}
	s.cancel()
	return true
}

// run executes one launch and always finishes with a not-running state event
func (s *Service) run(ctx context.Context, req model.LaunchRequest) {
	recordID := uuid.NewString()
	out := Outcome{Username: req.Username}

	defer func() {
		if r := recover(); r != nil {
			out.Status = model.LaunchStatusFailed
			out.Err = fmt.Errorf("launch panicked: %v", r)
			log.WithField("panic", r).Error("Launch worker panicked")
			s.emit(Event{Kind: EventFailed, Err: out.Err})
		}

		out.FinishedAt = time.Now()
		s.setStatus(out.Status)
		s.record(func(r Recorder) error { return r.RecordFinish(recordID, out) })

		s.mu.Lock()
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.mu.Unlock()

		s.running.Store(false)
		s.emit(Event{Kind: EventState, Running: false})
	}()

	s.emit(Event{Kind: EventState, Running: true})
	s.record(func(r Recorder) error { return r.RecordStart(recordID, req, time.Now()) })

	code, err := s.launch(ctx, req, &out.Username)
	switch {
	case err != nil && ctx.Err() != nil:
		log.WithField("version", req.VersionID).Info("Launch cancelled")
		out.Status = model.LaunchStatusCancelled
		out.Err = ctx.Err()
		s.emit(Event{Kind: EventCancelled})
	case err != nil:
		log.WithError(err).WithField("version", req.VersionID).Error("Launch failed")
		out.Status = model.LaunchStatusFailed
		out.Err = err
		s.emit(Event{Kind: EventFailed, Err: err})
	default:
		log.WithFields(log.Fields{"version": req.VersionID, "code": code}).Info("Game exited")
		out.Status = model.LaunchStatusExited
		out.ExitCode = code
		s.emit(Event{Kind: EventExited, ExitCode: code})
	}
}

// launch performs the install, build and spawn steps. username receives the
// name actually used.
func (s *Service) launch(ctx context.Context, req model.LaunchRequest, username *string) (int, error) {
	logger := log.WithFields(log.Fields{"version": req.VersionID, "ram": req.RAMMB})
	dir := s.config.GameDirectory

	if !s.installer.IsInstalled(dir, req.VersionID) {
		s.setStatus(model.LaunchStatusInstalling)
		logger.Info("Installing version")
		if err := s.installer.Install(ctx, req.VersionID, dir, s.progressCallback()); err != nil {
			return 0, fmt.Errorf("failed to install %s: %w", req.VersionID, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.setStatus(model.LaunchStatusLaunching)
	name := strings.TrimSpace(req.Username)
	if name == "" {
		name = s.newUsername()
		logger.WithField("username", name).Debug("Generated username")
	}
	*username = name

	s.mu.Lock()
	java := s.config.JavaExecutable
	s.mu.Unlock()

	argv, err := s.builder.BuildCommand(dir, req.VersionID, minecraft.Options{
		Username:        name,
		UUID:            s.newSessionID(),
		Token:           "",
		JVMArguments:    req.HeapArguments(),
		Demo:            req.Demo,
		JavaExecutable:  java,
		LauncherName:    s.config.LauncherName,
		LauncherVersion: s.config.LauncherVersion,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to build command for %s: %w", req.VersionID, err)
	}
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command for %s", req.VersionID)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.setStatus(model.LaunchStatusRunning)
	logger.WithField("java", argv[0]).Info("Starting game")
	logger.Debugf("Command: %s", strings.Join(argv, " "))
	return s.runner(ctx, argv, dir)
}

// progressCallback relays installer callbacks as progress events
func (s *Service) progressCallback() minecraft.Callback {
	var progress model.Progress
	return minecraft.Callback{
		SetStatus: func(label string) {
			progress.Label = label
			s.emit(Event{Kind: EventProgress, Progress: progress})
		},
		SetProgress: func(n int) {
			progress.Current = n
			s.emit(Event{Kind: EventProgress, Progress: progress})
		},
		SetMax: func(n int) {
			progress.Max = n
			s.emit(Event{Kind: EventProgress, Progress: progress})
		},
	}
}

func (s *Service) setStatus(status model.LaunchStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.emit(Event{Kind: EventStatus, Status: status})
}

func (s *Service) emit(e Event) {
	s.events <- e
}

func (s *Service) record(fn func(Recorder) error) {
	if s.recorder == nil {
		return
	}
	if err := fn(s.recorder); err != nil {
		log.WithError(err).Warn("Failed to record launch history")
	}
}

// newSessionID returns a time-based UUID, falling back to a random one
func newSessionID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RunProcess spawns argv with dir as working directory and waits for it.
// The game's output is forwarded to the log. Cancelling ctx kills the process.
func RunProcess(ctx context.Context, argv []string, dir string) (int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = ProcessWaitDelay

	output := log.WithField("source", "game").WriterLevel(log.InfoLevel)
	defer output.Close()
	cmd.Stdout = output
	cmd.Stderr = output

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	log.WithField("pid", cmd.Process.Pid).Debug("Game process started")

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to wait for game: %w", err)
	}
	return 0, nil
}
