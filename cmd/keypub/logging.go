package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"keypub/internal/config"
)

const logLevelEnv = "KEYPUB_LOG_LEVEL"

// logOutput receives CLI and server logs. Stdout is reserved for command output.
var logOutput io.Writer = os.Stderr

// setupLogging installs the default slog logger. The level comes from the
// flag, then KEYPUB_LOG_LEVEL, then the config file. A bad flag is an error;
// a bad env or config value only warns and keeps the default level.
func setupLogging(flagLevel, configLevel string) (warning string, err error) {
	sources := []struct{ name, raw string }{
		{"--log-level", flagLevel},
		{logLevelEnv, os.Getenv(logLevelEnv)},
		{"log_level", configLevel},
	}

	level := slog.LevelDebug
	for _, src := range sources {
		if strings.TrimSpace(src.raw) == "" {
			continue
		}
		parsed, perr := parseLogLevel(src.raw)
		if perr == nil {
			level = parsed
			break
		}
		if src.name == "--log-level" {
			return "", fmt.Errorf("invalid --log-level %q", src.raw)
		}
		warning = fmt.Sprintf("warning: invalid %s=%q; defaulting to %s", src.name, src.raw, config.DefaultLogLevel)
		break
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level})))
	return warning, nil
}

// parseLogLevel takes slog names ("info", "warn+2"), "warning" and raw integers.
func parseLogLevel(raw string) (slog.Level, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "warning" {
		s = "warn"
	}
	if n, err := strconv.Atoi(s); err == nil {
		return slog.Level(n), nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", raw)
	}
	return level, nil
}
