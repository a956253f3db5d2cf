// Package log provides structured logging for pdftok.
// Entries carry a level, a category and key/value fields. Logging stays
// disabled until Init is called, so library code can log unconditionally.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, defaulting to LevelDebug.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// Category groups related log messages.
type Category string

const (
	CatRegistry  Category = "registry"  // Registry document loads, edits and backups
	CatFiles     Category = "files"     // Directory loads and renames
	CatScan      Category = "scan"      // Tree scans and report writes
	CatInventory Category = "inventory" // Size inventories and comparisons
	CatDB        Category = "db"        // Snapshot database operations
	CatConfig    Category = "config"    // Configuration loading/saving
	CatMCP       Category = "mcp"       // MCP server tool calls
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	mu            sync.Mutex
)

// Init opens path for appending and makes it the log destination.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is the user's debug log
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defaultLogger = &Logger{file: f, writer: f, enabled: true, minLevel: LevelDebug}
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if defaultLogger != nil && defaultLogger.file == f {
			_ = f.Close()
			defaultLogger = nil
		}
	}, nil
}

// InitWriter logs to w. Intended for tests.
func InitWriter(w io.Writer) {
	mu.Lock()
	defaultLogger = &Logger{writer: w, enabled: true, minLevel: LevelDebug}
	mu.Unlock()
}

// Reset disables logging.
func Reset() {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [ERROR] [registry] message key=value key2=value2
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, sb.String())
	}
}
