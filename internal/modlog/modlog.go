// Package modlog provides the Logger interface the registry and CLI log
// through. There is no global/ambient logger (spec.md §9 "Global state"
// redesign note): every component that logs takes a Logger explicitly.
//
// Mirrors AILANG's internal/repl/repl.go, which builds its level-tagged
// console output from github.com/fatih/color SprintFunc helpers rather
// than a bare fmt.Printf.
package modlog

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// Logger is the narrow logging contract injected into the registry and
// CLI. Implementations must be safe for concurrent use.
type Logger interface {
	Log(level Level, format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Log(Level, string, ...any) {}

// NoOp returns a Logger that discards everything, for library embedding
// and tests that don't care about log output.
func NoOp() Logger { return noopLogger{} }

// writerLogger writes colorized, level-tagged lines to w.
type writerLogger struct {
	w     io.Writer
	debug func(format string, a ...any) string
	info  func(format string, a ...any) string
	warn  func(format string, a ...any) string
}

// New returns the default colorized Logger, writing to w.
func New(w io.Writer) Logger {
	return &writerLogger{
		w:     w,
		debug: color.New(color.FgHiBlack).SprintfFunc(),
		info:  color.New(color.FgCyan).SprintfFunc(),
		warn:  color.New(color.FgYellow, color.Bold).SprintfFunc(),
	}
}

func (l *writerLogger) Log(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch level {
	case LevelDebug:
		fmt.Fprintln(l.w, l.debug("DEBUG ")+msg)
	case LevelWarn:
		fmt.Fprintln(l.w, l.warn("WARN  ")+msg)
	default:
		fmt.Fprintln(l.w, l.info("INFO  ")+msg)
	}
}
