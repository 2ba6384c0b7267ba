// Package logging provides structured JSON logging for repochat components.
// Events go to a process-wide sink: stderr by default, the log file once
// OpenFile is called. The TUI owns the terminal, so it always logs to a file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Event represents a structured log event
type Event struct {
	Timestamp string                 `json:"ts"`
	Level     Level                  `json:"level"`
	Component string                 `json:"component"`
	Event     string                 `json:"event"`
	Tab       string                 `json:"tab,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  int64                  `json:"duration_ms,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

var (
	sinkMu   sync.Mutex
	sink     io.Writer = os.Stderr
	minLevel           = LevelInfo
)

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if w == nil {
		w = io.Discard
	}
	sink = w
}

// SetLevel drops events below lvl.
func SetLevel(lvl Level) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if _, ok := levelRank[lvl]; ok {
		minLevel = lvl
	}
}

// OpenFile appends events to the file at path, creating its directory.
// The caller closes the returned file on exit.
func OpenFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

// Logger provides structured logging
type Logger struct {
	component string
	tab       string
}

// New creates a new logger for a component
func New(component string) *Logger {
	return &Logger{
		component: component,
		tab:       os.Getenv("REPOCHAT_TAB_ID"),
	}
}

// WithTab sets the tab context
func (l *Logger) WithTab(tab string) *Logger {
	return &Logger{
		component: l.component,
		tab:       tab,
	}
}

// Component returns the component name.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) emit(e Event) {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	e.Component = l.component
	e.Tab = l.tab

	sinkMu.Lock()
	defer sinkMu.Unlock()
	if levelRank[e.Level] < levelRank[minLevel] {
		return
	}
	data, _ := json.Marshal(e)
	fmt.Fprintln(sink, string(data))
}

// log emits a structured log event
func (l *Logger) log(level Level, event string, extra map[string]interface{}, err error) {
	e := Event{
		Level: level,
		Event: event,
		Extra: extra,
	}
	if err != nil {
		e.Error = err.Error()
	}
	l.emit(e)
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]interface{}) {
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]interface{}) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]interface{}, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]interface{}, err error) {
	l.log(LevelError, event, extra, err)
}

// TimedEvent logs an event with duration
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]interface{}) {
	l.emit(Event{
		Level:    LevelInfo,
		Event:    event,
		Duration: time.Since(start).Milliseconds(),
		Extra:    extra,
	})
}

// Request logs one backend or metadata call. Failed calls log at warn.
func (l *Logger) Request(requestID, method, url string, status int, start time.Time, err error) {
	e := Event{
		Level:     LevelInfo,
		Event:     "http_request",
		RequestID: requestID,
		Duration:  time.Since(start).Milliseconds(),
		Extra: map[string]interface{}{
			"method": method,
			"url":    url,
			"status": status,
		},
	}
	if err != nil {
		e.Level = LevelWarn
		e.Error = err.Error()
	}
	l.emit(e)
}
