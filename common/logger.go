package common

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const logTimeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	logOnce sync.Once
	logger  zerolog.Logger
)

func configureLogger() {
	zerolog.TimeFieldFormat = logTimeFormat
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: logTimeFormat,
	}
	logger = zerolog.New(output).With().Timestamp().Logger()
}

// GetLoggerConfigured returns the process logger, setting the global level on
// first use. Unknown level names fall back to info.
func GetLoggerConfigured(level string) *zerolog.Logger {
	logOnce.Do(func() {
		configureLogger()
		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)
	})
	return &logger
}

func GetLogger() *zerolog.Logger {
	logOnce.Do(configureLogger)
	return &logger
}

// ComponentLogger derives a child logger tagged with the component name.
func ComponentLogger(component string) zerolog.Logger {
	return GetLogger().With().Str("component", component).Logger()
}
