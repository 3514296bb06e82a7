package launch

// Package launch runs one game launch at a time on a background goroutine:
// it installs the selected version when missing, builds the command line and
// supervises the game process. Progress, state changes and the outcome are
// delivered to the UI over a single event channel.
