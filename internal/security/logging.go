// Package security provides centralized security utilities for Tech Manager:
// structured logging, rate limiting, input validation, and configuration.
// This file implements the structured JSON logger used across the application.
package security

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// LogLevel identifies the severity of a log entry.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelSecurity LogLevel = "SECURITY"
)

// EventType classifies security-relevant events for monitoring and audit.
type EventType string

const (
	EventLoginSuccess      EventType = "LOGIN_SUCCESS"
	EventLoginFailure      EventType = "LOGIN_FAILURE"
	EventLogout            EventType = "LOGOUT"
	EventAccessDenied      EventType = "ACCESS_DENIED"
	EventRateLimitExceeded EventType = "RATE_LIMIT_EXCEEDED"
	EventPersistFailure    EventType = "PERSIST_FAILURE"
)

// LogEntry is the JSON structure written for every log line.
// Fields that do not apply to a given entry are omitted.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	EventType EventType      `json:"event_type,omitempty"`
	ActorID   string         `json:"actor_id,omitempty"`
	ActorName string         `json:"actor_name,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMS int64          `json:"latency_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Logger writes structured JSON log entries, one object per line.
// All output goes through a single *log.Logger so tests can capture it.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing JSON entries to stdout.
func NewLogger() *Logger {
	return &Logger{
		output: log.New(os.Stdout, "", 0),
	}
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.write(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning. Used for recoverable conditions such as a failed
// best-effort persistence write.
func (l *Logger) Warn(message string) {
	l.write(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error with its underlying cause. err may be nil.
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Critical logs a fatal-severity condition. The caller decides whether to
// terminate; the logger only records.
func (l *Logger) Critical(message string, err error) {
	entry := LogEntry{Level: LogLevelCritical, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// SecurityEvent logs an audit-relevant event such as a login attempt or an
// access denial. actorID and actorName may be empty for anonymous events.
func (l *Logger) SecurityEvent(event EventType, actorID, actorName, ip, userAgent string, extra map[string]any) {
	l.write(LogEntry{
		Level:     LogLevelSecurity,
		Message:   string(event),
		EventType: event,
		ActorID:   actorID,
		ActorName: actorName,
		IPAddress: ip,
		UserAgent: userAgent,
		Extra:     extra,
	})
}

// HTTPRequest logs a completed HTTP request with status and latency.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64, ip, userAgent string) {
	l.write(LogEntry{
		Level:     LogLevelInfo,
		Message:   fmt.Sprintf("%s %s %d", method, path, status),
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (l *Logger) write(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()

	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to plain text rather than dropping the entry.
		l.output.Printf(`{"timestamp":%q,"level":"ERROR","message":"failed to marshal log entry"}`,
			entry.Timestamp.Format(time.RFC3339))
		return
	}

	l.output.Println(string(data))
}
