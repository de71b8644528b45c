// Package logger provides the shared charmbracelet/log logger for companion.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout companion.
var Logger *log.Logger

var (
	mu      sync.Mutex
	logFile *os.File
)

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the level and output of the global logger. An empty file
// keeps stderr. Level falls back to COMPANION_LOG_LEVEL, then info. A log
// file opened by an earlier call is closed.
func Configure(level string, file string) error {
	if level == "" {
		level = strings.ToLower(os.Getenv("COMPANION_LOG_LEVEL"))
	}

	mu.Lock()
	defer mu.Unlock()

	var output io.Writer = os.Stderr
	var f *os.File
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		output = f
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	Logger = log.NewWithOptions(output, log.Options{
		ReportTimestamp: file != "",
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           parseLevel(level),
	})
	return nil
}

// SetOutput redirects the global logger, keeping its level. Tests use it to
// capture or silence output.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// With returns a component logger that writes through the global logger
// with a prefix, e.g. With("session").
func With(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
