package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// InitLogger configures the process-wide zerolog logger and installs it as
// the default context logger.
func InitLogger(level string, console bool) *zerolog.Logger {
	var out io.Writer = os.Stdout
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).
		With().
		Timestamp().
		Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.DefaultContextLogger = &logger
	return &logger
}

func Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
