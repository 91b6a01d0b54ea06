package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const maxBufferSize = 1000

var (
	instance *Logger
	once     sync.Once
)

type LogEntry struct {
	Timestamp time.Time
	Message   string
}

type Logger struct {
	out     io.WriteCloser
	logger  *log.Logger
	mu      sync.Mutex
	buffer  []LogEntry
	enabled bool
}

// Init opens a rotating log file at logPath. An empty path keeps only the
// in-memory buffer shown by the logs view.
func Init(logPath string) error {
	var initErr error
	once.Do(func() {
		if logPath == "" {
			return
		}

		rotator := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		if _, err := rotator.Write(nil); err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			return
		}

		instance = &Logger{
			out: rotator,
			logger: log.NewWithOptions(rotator, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.DateTime,
				Level:           log.DebugLevel,
			}),
			buffer:  make([]LogEntry, 0, maxBufferSize),
			enabled: true,
		}
	})

	EnsureInit()
	return initErr
}

func EnsureInit() {
	if instance == nil {
		instance = &Logger{
			buffer:  make([]LogEntry, 0, maxBufferSize),
			enabled: false,
		}
	}
}

func Close() error {
	if instance != nil && instance.out != nil {
		return instance.out.Close()
	}
	return nil
}

func addToBuffer(message string) {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Message:   message,
	}

	if len(instance.buffer) >= maxBufferSize {
		instance.buffer = instance.buffer[1:]
	}
	instance.buffer = append(instance.buffer, entry)
}

func GetLogs() []LogEntry {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	logs := make([]LogEntry, len(instance.buffer))
	copy(logs, instance.buffer)
	return logs
}

func write(level log.Level, message string) {
	if instance != nil && instance.enabled && instance.logger != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.logger.Log(level, message)
	}
}

func LogFetch(url string) {
	message := fmt.Sprintf("[FETCH] %s", url)
	addToBuffer(message)
	write(log.DebugLevel, message)
}

func LogFileOpen(path string) {
	message := fmt.Sprintf("[FILE_OPEN] %s", path)
	addToBuffer(message)
	write(log.DebugLevel, message)
}

func LogFileWrite(path string) {
	message := fmt.Sprintf("[FILE_WRITE] %s", path)
	addToBuffer(message)
	write(log.DebugLevel, message)
}

func LogError(operation, target string, err error) {
	message := fmt.Sprintf("[ERROR] %s: %s - %v", operation, target, err)
	addToBuffer(message)
	write(log.ErrorLevel, message)
}

func Log(message string, args ...interface{}) {
	formatted := fmt.Sprintf("[INFO] "+message, args...)
	addToBuffer(formatted)
	write(log.InfoLevel, formatted)
}
