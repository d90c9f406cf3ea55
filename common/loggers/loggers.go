// Package loggers provides the build loggers.
package loggers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	jww "github.com/spf13/jwalterweatherman"
)

// LogCounters counts the warnings and errors logged during a build.
type LogCounters struct {
	ErrorCounter *jww.Counter
	WarnCounter  *jww.Counter
}

// Logger is the logger passed around in Deps.
type Logger interface {
	Printf(format string, v ...any)
	Println(v ...any)
	Debugf(format string, v ...any)
	Debugln(v ...any)
	Infof(format string, v ...any)
	Infoln(v ...any)
	Warnf(format string, v ...any)
	Warnln(v ...any)
	Errorf(format string, v ...any)
	Errorln(v ...any)

	// Out is where Printf and friends write user facing feedback.
	Out() io.Writer

	LogCounters() *LogCounters

	// Reset resets the counters.
	Reset()
}

type logger struct {
	*jww.Notepad

	out io.Writer

	logCounters *LogCounters
}

func (l *logger) Printf(format string, v ...any) {
	l.FEEDBACK.Printf(format, v...)
}

func (l *logger) Println(v ...any) {
	l.FEEDBACK.Println(v...)
}

func (l *logger) Debugf(format string, v ...any) {
	l.DEBUG.Printf(format, v...)
}

func (l *logger) Debugln(v ...any) {
	l.DEBUG.Println(v...)
}

func (l *logger) Infof(format string, v ...any) {
	l.INFO.Printf(format, v...)
}

func (l *logger) Infoln(v ...any) {
	l.INFO.Println(v...)
}

func (l *logger) Warnf(format string, v ...any) {
	l.WARN.Printf(format, v...)
}

func (l *logger) Warnln(v ...any) {
	l.WARN.Println(v...)
}

func (l *logger) Errorf(format string, v ...any) {
	l.ERROR.Printf(format, v...)
}

func (l *logger) Errorln(v ...any) {
	l.ERROR.Println(v...)
}

func (l *logger) Out() io.Writer {
	return l.out
}

func (l *logger) LogCounters() *LogCounters {
	return l.logCounters
}

func (l *logger) Reset() {
	l.logCounters.ErrorCounter.Reset()
	l.logCounters.WarnCounter.Reset()
}

// ParseLevel maps a level name from config to a jww threshold.
func ParseLevel(s string) (jww.Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return jww.LevelDebug, nil
	case "info":
		return jww.LevelInfo, nil
	case "", "warn", "warning":
		return jww.LevelWarn, nil
	case "error":
		return jww.LevelError, nil
	default:
		return jww.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger creates a new Logger for the given thresholds.
func NewLogger(stdoutThreshold, logThreshold jww.Threshold, outHandle, logHandle io.Writer) Logger {
	return newLogger(stdoutThreshold, logThreshold, outHandle, logHandle)
}

// NewDebugLogger is a convenience function to create a debug logger.
func NewDebugLogger() Logger {
	return NewBasicLogger(jww.LevelDebug)
}

// NewWarningLogger is a convenience function to create a warning logger.
func NewWarningLogger() Logger {
	return NewBasicLogger(jww.LevelWarn)
}

// NewErrorLogger is a convenience function to create an error logger.
func NewErrorLogger() Logger {
	return NewBasicLogger(jww.LevelError)
}

// NewBasicLogger creates a new basic logger writing to Stdout.
func NewBasicLogger(t jww.Threshold) Logger {
	return newLogger(t, jww.LevelError, os.Stdout, io.Discard)
}

// NewBasicLoggerForWriter creates a new basic logger writing to w.
func NewBasicLoggerForWriter(t jww.Threshold, w io.Writer) Logger {
	return newLogger(t, jww.LevelError, w, io.Discard)
}

// NewDefault creates the logger used when none is configured.
func NewDefault() Logger {
	return NewWarningLogger()
}

func newLogger(stdoutThreshold, logThreshold jww.Threshold, outHandle, logHandle io.Writer) *logger {
	errorCounter := &jww.Counter{}
	warnCounter := &jww.Counter{}

	listeners := []jww.LogListener{
		jww.LogCounter(errorCounter, jww.LevelError),
		jww.LogCounter(warnCounter, jww.LevelWarn),
	}

	return &logger{
		Notepad: jww.NewNotepad(stdoutThreshold, logThreshold, outHandle, logHandle, "", log.Ldate|log.Ltime, listeners...),
		out:     outHandle,
		logCounters: &LogCounters{
			ErrorCounter: errorCounter,
			WarnCounter:  warnCounter,
		},
	}
}

// NewBufferLogger returns a logger that writes everything at or above t
// into the returned buffer. Mostly useful in tests.
func NewBufferLogger(t jww.Threshold) (Logger, *bytes.Buffer) {
	var b bytes.Buffer
	return newLogger(t, jww.LevelError, &b, io.Discard), &b
}
