package common

import (
	"os"
	"path/filepath"
)

// StateDir is where the soundboard keeps its log file.
func StateDir() string {
	return filepath.Join(stateHome(), "soundboard")
}

// DefaultLogPath returns the log file used while the board owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "soundboard.log")
}

// https://specifications.freedesktop.org/basedir/latest/#variables
func stateHome() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return dir
}
