package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log levels as written to the log file.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// timestampLayout matches the log line format:
//
//	2006-01-02 15:04:05 [INFO] message
const timestampLayout = "2006-01-02 15:04:05"

// FileLogger writes timestamped, leveled lines to a log file and mirrors
// warnings and errors to a secondary writer (typically stderr).
type FileLogger struct {
	mu     sync.Mutex
	file   io.WriteCloser
	mirror io.Writer
	now    func() time.Time
}

// NewFileLogger creates (or truncates) the log file at path.
// Failure to open the file is fatal for the run: the log is part of the
// deliverable, so the caller should abort on error.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &FileLogger{
		file:   f,
		mirror: os.Stderr,
		now:    time.Now,
	}, nil
}

// NewFileLoggerTo writes to an arbitrary writer, for tests.
func NewFileLoggerTo(w io.WriteCloser, mirror io.Writer) *FileLogger {
	return &FileLogger{file: w, mirror: mirror, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (l *FileLogger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

func (l *FileLogger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s [%s] %s\n", l.now().Format(timestampLayout), level, fmt.Sprintf(format, args...))
	fmt.Fprint(l.file, line)

	if l.mirror != nil && level != LevelInfo {
		fmt.Fprint(l.mirror, line)
	}
}

// Debug is filed as INFO; the log format has no DEBUG level.
func (l *FileLogger) Debug(format string, args ...interface{}) {
	if os.Getenv("HWBENCH_DEBUG") != "" {
		l.write(LevelInfo, format, args...)
	}
}

func (l *FileLogger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, format, args...)
}

func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.write(LevelWarning, format, args...)
}

func (l *FileLogger) Error(format string, args ...interface{}) {
	l.write(LevelError, format, args...)
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
