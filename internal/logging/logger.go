package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/gymlogger/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
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
}

// Setup configures the global logrus logger and returns a func that releases the
// log file, if one was opened.
func Setup(params LoggerSetupParams) func() error {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	out, closer := logOutput(params)
	logrus.SetOutput(out)
	return closer
}

func setupSentry(params LoggerSetupParams) {
	if params.SentryDSN == "" {
		logrus.Warnln("sentry enabled, but DSN not set, use SENTRY_DSN env var")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up successfully")
}

func logOutput(params LoggerSetupParams) (io.Writer, func() error) {
	noop := func() error { return nil }
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout, noop
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		logrus.Errorf("create logs dir for [%s]: %s, writing logs to STDOUT", fileName, err)
		return os.Stdout, noop
	}

	fileLogger := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    50,    // megabytes
		LocalTime:  false, // UTC
		Compress:   true,
		MaxBackups: 30,
		MaxAge:     365, // days
	}

	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, fileLogger), fileLogger.Close
	}
	return fileLogger, fileLogger.Close
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
