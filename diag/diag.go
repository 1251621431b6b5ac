// Package diag provides the diagnostic sink threaded through nstage, berclaz
// and ioformat instead of a package-level logger singleton. Severities are
// Error, Info, and Debug.
package diag

import (
	"fmt"
	"log"
	"os"
)

// Level is a diagnostic severity, ordered least to most verbose.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// Sink receives diagnostic messages at a given severity. Drivers accept a
// Sink instead of calling a global logger, matching the rest of the
// codebase's dependency-injected configuration style.
type Sink interface {
	Log(level Level, msg string)
}

// StdSink writes to a *log.Logger, filtering out messages above Threshold.
type StdSink struct {
	Logger    *log.Logger
	Threshold Level
}

// NewStdSink returns a StdSink writing to os.Stderr with the given verbosity
// threshold.
func NewStdSink(threshold Level) *StdSink {
	return &StdSink{
		Logger:    log.New(os.Stderr, "", log.LstdFlags),
		Threshold: threshold,
	}
}

func (s *StdSink) Log(level Level, msg string) {
	if s == nil || s.Logger == nil || level > s.Threshold {
		return
	}
	s.Logger.Println(prefix(level) + msg)
}

func prefix(level Level) string {
	switch level {
	case LevelError:
		return "[error] "
	case LevelInfo:
		return "[info] "
	case LevelDebug:
		return "[debug] "
	default:
		return ""
	}
}

// NopSink discards every message; useful as a zero-value default so callers
// never need a nil check.
type NopSink struct{}

func (NopSink) Log(Level, string) {}

// Errorf, Infof and Debugf are convenience wrappers around Sink.Log for the
// common case of formatted messages. A nil Sink is treated as NopSink.
func Errorf(s Sink, format string, args ...interface{}) { logf(s, LevelError, format, args...) }
func Infof(s Sink, format string, args ...interface{})  { logf(s, LevelInfo, format, args...) }
func Debugf(s Sink, format string, args ...interface{}) { logf(s, LevelDebug, format, args...) }

func logf(s Sink, level Level, format string, args ...interface{}) {
	if s == nil {
		return
	}
	s.Log(level, fmt.Sprintf(format, args...))
}
