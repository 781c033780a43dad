package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// color returns the ANSI escape for terminal output of this level.
func (l Level) color() string {
	switch l {
	case DEBUG:
		return "\033[36m" // cyan
	case INFO:
		return "\033[38;5;195m" // pale blue
	case WARN:
		return "\033[33m" // yellow
	case ERROR:
		return "\033[31m" // red
	case FATAL:
		return "\033[35m" // magenta
	default:
		return "\033[0m"
	}
}

// ParseLevel converts a string level to a Level, defaulting to INFO.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Config holds logger configuration options.
type Config struct {
	Level       string // "debug", "info", "warn", "error", "fatal"
	Output      io.Writer
	Prefix      string
	EnableColor bool
	LogDir      string // when set with EnableFile, messages also go to a dated file
	EnableFile  bool
}

// DefaultConfig returns a sensible stdout configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Output:      os.Stdout,
		Prefix:      "",
		EnableColor: true,
	}
}

// Logger is a leveled, prefix-scoped logger.
type Logger struct {
	mu          sync.RWMutex
	level       Level
	prefix      string
	enableColor bool
	logger      *log.Logger
}

// New creates a Logger from config. When file output is requested the log
// file is opened for append under LogDir, named by the current date; file
// output carries no color codes only when color is disabled globally, so
// keep EnableColor off for file-heavy deployments.
func New(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	if config.EnableFile && config.LogDir != "" {
		if w, err := openLogFile(config.LogDir); err != nil {
			fmt.Fprintf(os.Stderr, "logging: could not open log file: %v\n", err)
		} else {
			output = io.MultiWriter(output, w)
		}
	}

	return &Logger{
		level:       ParseLevel(config.Level),
		prefix:      config.Prefix,
		enableColor: config.EnableColor,
		logger:      log.New(output, "", 0),
	}
}

func openLogFile(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// SetLevel sets the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// IsLevelEnabled reports whether the given level would be emitted.
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *Logger) format(level Level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	var colorStart, colorEnd string
	if l.enableColor {
		colorStart = level.color()
		colorEnd = "\033[0m"
	}

	prefix := ""
	if l.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", l.prefix)
	}

	return fmt.Sprintf("%s%-5s %s %s%s%s", colorStart, level.String(), timestamp, prefix, message, colorEnd)
}

func (l *Logger) emit(level Level, message string) {
	if !l.IsLevelEnabled(level) {
		return
	}

	l.mu.RLock()
	l.logger.Print(l.format(level, message))
	l.mu.RUnlock()

	if level == FATAL {
		os.Exit(1)
	}
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(args ...interface{}) { l.emit(DEBUG, fmt.Sprint(args...)) }

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(DEBUG, fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(args ...interface{}) { l.emit(INFO, fmt.Sprint(args...)) }

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(INFO, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(args ...interface{}) { l.emit(WARN, fmt.Sprint(args...)) }

// Warnf logs a formatted message at WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(WARN, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(args ...interface{}) { l.emit(ERROR, fmt.Sprint(args...)) }

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(ERROR, fmt.Sprintf(format, args...))
}

// Fatal logs at FATAL level and exits the program.
func (l *Logger) Fatal(args ...interface{}) { l.emit(FATAL, fmt.Sprint(args...)) }

// Fatalf logs a formatted message at FATAL level and exits the program.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.emit(FATAL, fmt.Sprintf(format, args...))
}

// WithPrefix returns a logger scoped under an additional prefix segment.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	combined := prefix
	if l.prefix != "" {
		combined = l.prefix + ":" + prefix
	}

	return &Logger{
		level:       l.level,
		prefix:      combined,
		enableColor: l.enableColor,
		logger:      l.logger,
	}
}
