package model

// LaunchStatus represents the phase of a launch attempt
type LaunchStatus string

const (
	// LaunchStatusIdle means no launch is in flight
	LaunchStatusIdle LaunchStatus = "Idle"

	// LaunchStatusInstalling means version files are being downloaded
	LaunchStatusInstalling LaunchStatus = "Installing"

	// LaunchStatusLaunching means the command line is being assembled and the process spawned
	LaunchStatusLaunching LaunchStatus = "Launching"

	// LaunchStatusRunning means the game process is alive
	LaunchStatusRunning LaunchStatus = "Running"

	// LaunchStatusExited means the game process finished, successfully or not
	LaunchStatusExited LaunchStatus = "Exited"

	// LaunchStatusFailed means the launch failed before or while spawning the game
	LaunchStatusFailed LaunchStatus = "Failed"

	// LaunchStatusCancelled means the user cancelled the launch
	LaunchStatusCancelled LaunchStatus = "Cancelled"
)

// String returns the string representation of LaunchStatus
func (ls LaunchStatus) String() string {
	return string(ls)
}

// IsActive returns true if a launch is in progress
func (ls LaunchStatus) IsActive() bool {
	return ls == LaunchStatusInstalling || ls == LaunchStatusLaunching || ls == LaunchStatusRunning
}

// IsFinished returns true if the launch reached a terminal state (exited, failed, or cancelled)
func (ls LaunchStatus) IsFinished() bool {
	return ls == LaunchStatusExited || ls == LaunchStatusFailed || ls == LaunchStatusCancelled
}
