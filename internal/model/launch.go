package model

import (
	"fmt"
	"strings"
)

// Heap sizing
const (
	MinRAMMB = 512
)

// LaunchRequest holds the user-supplied parameters of one launch attempt
type LaunchRequest struct {
	VersionID string
	Username  string // generated when blank
	RAMMB     int
	Demo      bool
}

// HeapArguments returns the JVM heap flags for the requested RAM amount.
// Initial heap is half of the maximum, rounded down.
func (r LaunchRequest) HeapArguments() []string {
	return []string{
		fmt.Sprintf("-Xmx%dM", r.RAMMB),
		fmt.Sprintf("-Xms%dM", r.RAMMB/2),
	}
}

// HasUsername reports whether a non-blank username was supplied
func (r LaunchRequest) HasUsername() bool {
	return strings.TrimSpace(r.Username) != ""
}

// Progress is the installation progress relayed from the worker to the UI
type Progress struct {
	Current int
	Max     int
	Label   string
}

// Fraction returns progress as 0.0 to 1.0, or 0 when Max is unknown
func (p Progress) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Max)
	if f > 1 {
		return 1
	}
	return f
}
