// Package logger separates data output from diagnostics. Everything written
// through Warn/Error/Info goes to the error stream so piping stdout never
// captures log noise.
package logger

import (
	"fmt"
	"io"
)

type Logger struct {
	out   io.Writer
	err   io.Writer
	quiet bool
	debug bool
}

func New(out io.Writer, err io.Writer, quiet bool, debug bool) *Logger {
	return &Logger{
		out:   out,
		err:   err,
		quiet: quiet,
		debug: debug,
	}
}

// Log writes to the data stream. forceShow bypasses quiet mode; report
// output that is the point of the command should always force.
func (logger *Logger) Log(message string, forceShow bool) {
	if logger.quiet && !forceShow && !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.out, message); err != nil {
		return
	}
}

func (logger *Logger) Debug(message string) {
	if !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.out, message); err != nil {
		return
	}
}

// Info writes a non-error diagnostic to the error stream.
func (logger *Logger) Info(message string) {
	if logger.quiet && !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

// Warn writes a warning diagnostic to the error stream. Warnings are shown
// even in quiet mode.
func (logger *Logger) Warn(message string) {
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

func (logger *Logger) Error(message string) {
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

func (logger *Logger) Errorf(format string, args ...any) {
	if _, err := fmt.Fprintf(logger.err, format, args...); err != nil {
		return
	}
}
