package logging

import (
	"io"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileSuffix    = ".log"
	logFileMaxSizeMB = 20
	logFileBackups   = 10
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// Stdout is where console logs go, os.Stdout when nil. The CLI points
	// it at stderr to keep command output clean.
	Stdout io.Writer
}

// Setup configures the standard logrus logger: level, formatter, output
// (console, rotated file or both) and the optional sentry hook.
func Setup(params LoggerSetupParams) {
	logrus.SetLevel(GetLevel(params.LogLevel))
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetOutput(logOutput(params))

	if params.SentryEnabled {
		setupSentry(params)
	}
}

func logOutput(params LoggerSetupParams) io.Writer {
	console := params.Stdout
	if console == nil {
		console = os.Stdout
	}
	if params.LogFileName == "" {
		return console
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, logFileSuffix) {
		fileName += logFileSuffix
	}
	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileBackups,
		LocalTime:  false, // UTC in backup names
		Compress:   true,
	}

	if !params.LogToStdout {
		return rotated
	}
	return NewCombinedWriter(console, rotated)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         params.SentryDSN,
		Environment: params.Environment,
		ServerName:  params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Debugln("sentry hook added")
}

// GetLevel parses a level name case-insensitively. Unknown or empty names
// give the trace level, so a typo in the config never hides logs.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
