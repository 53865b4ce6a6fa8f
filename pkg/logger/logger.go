package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of log messages.
type LogLevel int

// Log level constants defining message severity.
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLogLevel converts a string log level to its LogLevel constant.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// RotationConfig controls the lumberjack file rotation.
type RotationConfig struct {
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultRotation is used when no rotation settings are configured.
var DefaultRotation = RotationConfig{MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}

// Logger provides leveled logging to stdout and an optional rotating file.
type Logger struct {
	loggers map[LogLevel]*log.Logger
	level   LogLevel
	mu      sync.RWMutex
	exit    func(int)
}

var (
	instance *Logger
	once     sync.Once
)

// Init initializes the global logger at INFO level with default rotation.
func Init(logPath string) {
	InitWithConfig(logPath, INFO, DefaultRotation)
}

// InitWithConfig initializes the global logger once. An empty logPath logs to stdout only.
func InitWithConfig(logPath string, level LogLevel, rotation RotationConfig) {
	once.Do(func() {
		l, err := NewFileLogger(logPath, level, rotation)
		if err != nil {
			log.Printf("[WARN] file logging disabled: %v", err)
			l = New(os.Stdout, level)
		}
		instance = l
	})
}

// NewFileLogger creates a logger writing to stdout and, when logPath is set, a rotating file.
func NewFileLogger(logPath string, level LogLevel, rotation RotationConfig) (*Logger, error) {
	if logPath == "" {
		return New(os.Stdout, level), nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
	}

	return New(io.MultiWriter(os.Stdout, logFile), level), nil
}

// New creates a logger writing every level to w.
func New(w io.Writer, level LogLevel) *Logger {
	flags := log.LstdFlags | log.Lshortfile
	l := &Logger{
		loggers: make(map[LogLevel]*log.Logger, len(levelNames)),
		level:   level,
		exit:    os.Exit,
	}
	for lvl, name := range levelNames {
		l.loggers[lvl] = log.New(w, "["+name+"] ", flags)
	}
	return l
}

// SetLevel changes the minimum log level for filtering messages.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) shouldLog(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// output writes msg at level; depth is the number of frames above the public caller.
func (l *Logger) output(level LogLevel, depth int, msg string) {
	if !l.shouldLog(level) {
		return
	}
	l.loggers[level].Output(depth+2, msg)
	if level == FATAL {
		l.exit(1)
	}
}

// Debugf logs a formatted debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DEBUG, 1, fmt.Sprintf(format, v...))
}

// Infof logs a formatted info-level message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(INFO, 1, fmt.Sprintf(format, v...))
}

// Warnf logs a formatted warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(WARN, 1, fmt.Sprintf(format, v...))
}

// Errorf logs a formatted error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(ERROR, 1, fmt.Sprintf(format, v...))
}

// Fatalf logs a formatted fatal-level message and exits the program.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(FATAL, 1, fmt.Sprintf(format, v...))
}

// Global convenience functions. They are no-ops until Init or InitWithConfig runs.

func Debugf(format string, v ...interface{}) {
	if instance != nil {
		instance.output(DEBUG, 1, fmt.Sprintf(format, v...))
	}
}

func Infof(format string, v ...interface{}) {
	if instance != nil {
		instance.output(INFO, 1, fmt.Sprintf(format, v...))
	}
}

func Warnf(format string, v ...interface{}) {
	if instance != nil {
		instance.output(WARN, 1, fmt.Sprintf(format, v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if instance != nil {
		instance.output(ERROR, 1, fmt.Sprintf(format, v...))
	}
}

// Fatalf logs through the global logger and exits; without a logger it falls back to log.Fatalf.
func Fatalf(format string, v ...interface{}) {
	if instance != nil {
		instance.output(FATAL, 1, fmt.Sprintf(format, v...))
		return
	}
	log.Fatalf(format, v...)
}

// SetLevel changes the minimum log level for the global logger instance.
func SetLevel(level LogLevel) {
	if instance != nil {
		instance.SetLevel(level)
	}
}

// GetLevel returns the current minimum log level of the global logger instance.
func GetLevel() LogLevel {
	if instance != nil {
		return instance.GetLevel()
	}
	return INFO
}
