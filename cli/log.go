package cli

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/IkeLewis/scsh/log"
)

// Logger environment variables. The launcher's own switch vocabulary is fixed
// by the grammar, so ambient configuration rides on the environment and the
// config file instead of flags.
const (
	envLogLevel  = "SCSH_LOG_LEVEL"
	envLogFormat = "SCSH_LOG_FORMAT"
	envLogTime   = "SCSH_LOG_TIME"
	envLogCaller = "SCSH_LOG_CALLER"
)

// configureLogging applies logger settings from the config file, overridden
// by any SCSH_LOG_* environment variables.
func configureLogging(ctx context.Context, cfg configFile) {
	level := cfg.Log.Level
	if v, ok := os.LookupEnv(envLogLevel); ok {
		level = v
	}

	format := cfg.Log.Format
	if v, ok := os.LookupEnv(envLogFormat); ok {
		format = v
	}

	layout := cfg.Log.TimeLayout
	if v, ok := os.LookupEnv(envLogTime); ok {
		layout = v
	}

	caller := cfg.Log.Caller
	if v, ok := os.LookupEnv(envLogCaller); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			caller = b
		}
	}

	opts := []log.Option{log.WithCaller(caller)}

	if level != "" {
		opts = append(opts, log.WithLevel(log.ParseLevel(level)))
	}

	if format != "" {
		opts = append(opts, log.WithFormat(log.ParseFormat(format)))
	}

	if layout != "" {
		opts = append(opts, log.WithTimeLayout(layout))
	}

	log.Config(opts...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", level),
		slog.String("format", format),
		slog.String("time", layout),
		slog.Bool("caller", caller),
	)
}
