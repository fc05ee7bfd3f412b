package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"nclx/gymnotetaker/internal/config"
)

type SetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
}

// ParamsFromConfig maps the log section of the config file.
func ParamsFromConfig(cfg config.LogConfig) SetupParams {
	return SetupParams{
		LogFileName:   cfg.File,
		LogToStdout:   cfg.ToStdout,
		LogLevel:      cfg.Level,
		LogFormatJSON: cfg.JSON,
	}
}

// Setup configures the global logrus logger and returns the writer it logs to.
func Setup(params SetupParams) io.Writer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Debugln("writing logs only to STDOUT")
		return os.Stdout
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		LocalTime:  false, // UTC
		Compress:   true,
	}

	var out io.Writer = lumberJackLogger
	if params.LogToStdout {
		out = NewCombinedWriter(os.Stdout, lumberJackLogger)
	}
	logrus.SetOutput(out)
	logrus.Debugf("writing logs to %s (stdout: %t)", params.LogFileName, params.LogToStdout)
	return out
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
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
