package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxFileSizeMB = 50

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// Console receives the non-file output; defaults to os.Stdout.
	// The CLI points it to stderr to keep its own output clean.
	Console          io.Writer
	MaxFileSizeMB    int
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	if params.SentryEnabled {
		if err := setupSentry(params); err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			logrus.Infof("sentry set up for [%s] in [%s]", params.SentryServerName, params.Environment)
		}
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(output(params))
}

func setupSentry(params LoggerSetupParams) error {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		return err
	}

	logrus.AddHook(NewSentryHook(
		[]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		},
		map[string]string{
			"environment": params.Environment,
			"service":     params.SentryServerName,
		},
	))
	return nil
}

func output(params LoggerSetupParams) io.Writer {
	console := params.Console
	if console == nil {
		console = os.Stdout
	}

	if params.LogFileName == "" {
		return console
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	maxSize := params.MaxFileSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxFileSizeMB
	}

	// rotated files are kept, there is no MaxBackups / MaxAge
	rotating := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   maxSize,
		LocalTime: false, // UTC
		Compress:  true,
	}

	if params.LogToStdout {
		return newTeeWriter(console, rotating)
	}
	return rotating
}

// GetLevel parses a level name, falling back to trace for unknown ones.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
