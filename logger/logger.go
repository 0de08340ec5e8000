package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()

	initOnce sync.Once
)

// InitLoggers wires the three loggers to stdout and to a rotated log file.
// LOG_FILE, LOG_LEVEL and LOG_FORMAT are read from the environment.
func InitLoggers() {
	initOnce.Do(func() {
		logFile := os.Getenv("LOG_FILE")
		if logFile == "" {
			logFile = filepath.Join("logs", "app.log")
		}

		var out io.Writer = os.Stdout
		if logFile != "-" {
			if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
				out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    10, // megabytes
					MaxBackups: 5,
					MaxAge:     30, // days
					Compress:   true,
				})
			}
		}

		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}

		var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
			formatter = &logrus.JSONFormatter{}
		}

		for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, ErrorLogger} {
			l.SetOutput(out)
			l.SetFormatter(formatter)
			l.SetLevel(level)
		}
	})
}
