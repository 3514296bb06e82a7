package ui

import "time"

// Window sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 500
)

// HeaderLogoSize is the edge of the logo shown above the tabs
const HeaderLogoSize float32 = 48

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	DefaultPlayerName  = "Player"
)

// Tab indices
const (
	TabPlay = iota
	TabNews
	TabSettings
)

// VersionLoadTimeout bounds the startup version list request
const VersionLoadTimeout = 30 * time.Second

// DownloadThreadOptions are the selectable installer parallelism values
var DownloadThreadOptions = []string{"1", "2", "4", "8", "16", "32"}
