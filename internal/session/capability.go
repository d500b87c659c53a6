package session

import (
	"os"

	"golang.org/x/term"
)

// Capability selects the input variant for a session.
type Capability int

const (
	// RealTime means a full-screen interactive terminal is available.
	RealTime Capability = iota
	// LineBuffered is the blocking prompt fallback.
	LineBuffered
)

// Probe resolves the terminal capability once at session start. A
// non-terminal stdin or stdout degrades silently to the line-buffered path;
// it is not an error.
func Probe() Capability {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return RealTime
	}
	return LineBuffered
}
