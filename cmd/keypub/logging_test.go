package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: " INFO ", want: slog.LevelInfo},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "warn+2", want: slog.LevelWarn + 2},
		{raw: "error", want: slog.LevelError},
		{raw: "8", want: slog.LevelError},
		{raw: "", wantErr: true},
		{raw: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.raw, func(t *testing.T) {
			got, err := parseLogLevel(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.raw, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("parseLogLevel(%q) = %v, %v; want %v", tt.raw, got, err, tt.want)
			}
		})
	}
}

// captureLogs points logOutput at a buffer and restores the default logger.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevLogger := logOutput, slog.Default()
	logOutput = &buf
	t.Cleanup(func() {
		logOutput = prevOut
		slog.SetDefault(prevLogger)
	})
	return &buf
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		env         string
		configLevel string
		wantLevel   slog.Level
		wantWarning string
		wantErr     bool
	}{
		{name: "default is debug", wantLevel: slog.LevelDebug},
		{name: "flag wins over bad env", flag: "error", env: "verbose", configLevel: "info", wantLevel: slog.LevelError},
		{name: "env wins over config", env: "warn", configLevel: "info", wantLevel: slog.LevelWarn},
		{name: "config used last", configLevel: "info", wantLevel: slog.LevelInfo},
		{name: "bad flag fails", flag: "verbose", wantErr: true},
		{name: "bad env warns", env: "verbose", configLevel: "error", wantLevel: slog.LevelDebug, wantWarning: `invalid KEYPUB_LOG_LEVEL="verbose"; defaulting to debug`},
		{name: "bad config warns", configLevel: "loud", wantLevel: slog.LevelDebug, wantWarning: `invalid log_level="loud"; defaulting to debug`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			t.Setenv(logLevelEnv, tt.env)

			warning, err := setupLogging(tt.flag, tt.configLevel)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("setup logging: %v", err)
			}
			if tt.wantWarning == "" && warning != "" {
				t.Fatalf("unexpected warning %q", warning)
			}
			if !strings.Contains(warning, tt.wantWarning) {
				t.Fatalf("expected warning containing %q, got %q", tt.wantWarning, warning)
			}

			ctx, h := context.Background(), slog.Default().Handler()
			if !h.Enabled(ctx, tt.wantLevel) || h.Enabled(ctx, tt.wantLevel-1) {
				t.Fatalf("expected minimum level %v", tt.wantLevel)
			}
		})
	}
}

func TestLoggingWritesToLogOutput(t *testing.T) {
	buf := captureLogs(t)
	t.Setenv(logLevelEnv, "warning")
	if _, err := setupLogging("", ""); err != nil {
		t.Fatalf("setup logging: %v", err)
	}

	slog.Info("key published", "id", "hidden")
	slog.Warn("slow store", "duration_ms", 900)

	out := buf.String()
	if strings.Contains(out, "key published") {
		t.Fatalf("expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "duration_ms=900") {
		t.Fatalf("expected warn record, got %q", out)
	}
}
