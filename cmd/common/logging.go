package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogOptions controls SetupLogging.
type LogOptions struct {
	File    string // Log file, empty logs to stderr only
	Stderr  bool   // Also log to stderr when File is set
	Verbose bool   // Include debug records
	Notify  bool   // Raise desktop notifications for channel errors
}

// SetupLogging installs the default slog logger. The returned func closes
// the log file, if any.
func SetupLogging(opts LogOptions) (func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return closeFn, err
		}
		logFile, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return closeFn, err
		}
		closeFn = func() { _ = logFile.Close() }

		out = logFile
		if opts.Stderr {
			out = io.MultiWriter(os.Stderr, logFile)
		}
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	if opts.Notify {
		handler = NewNotifyHandler(handler, DesktopNotify)
	}
	slog.SetDefault(slog.New(handler))

	return closeFn, nil
}
