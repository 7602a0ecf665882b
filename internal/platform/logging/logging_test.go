package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/jsamuelsen11/numeral-service/internal/platform/logging"
)

func TestNew_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		isJSON bool
	}{
		{logging.FormatJSON, true},
		{logging.FormatText, false},
		{"logfmt", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", tt.format, &buf).Info("converted", slog.Int("value", 9))

			var rec map[string]any
			err := json.Unmarshal(buf.Bytes(), &rec)
			if tt.isJSON {
				if err != nil {
					t.Fatalf("output %q is not JSON: %v", buf.String(), err)
				}
				if rec["msg"] != "converted" || rec["value"] != float64(9) {
					t.Errorf("record = %v, want msg and value fields", rec)
				}
				return
			}
			if err == nil || !strings.Contains(buf.String(), "msg=converted value=9") {
				t.Errorf("output = %q, want key=value text", buf.String())
			}
		})
	}
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level      string
		enabled    []slog.Level
		disabled   []slog.Level
		wantSource bool
	}{
		{"debug", []slog.Level{slog.LevelDebug}, nil, true},
		{"info", []slog.Level{slog.LevelInfo}, []slog.Level{slog.LevelDebug}, false},
		{"WARN", []slog.Level{slog.LevelWarn}, []slog.Level{slog.LevelInfo}, false},
		{"error", []slog.Level{slog.LevelError}, []slog.Level{slog.LevelWarn}, false},
		{"verbose", []slog.Level{slog.LevelInfo}, []slog.Level{slog.LevelDebug}, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.New(tt.level, logging.FormatJSON, &buf)
			ctx := context.Background()

			for _, l := range tt.enabled {
				if !logger.Enabled(ctx, l) {
					t.Errorf("level %q: %v disabled, want enabled", tt.level, l)
				}
			}
			for _, l := range tt.disabled {
				if logger.Enabled(ctx, l) {
					t.Errorf("level %q: %v enabled, want disabled", tt.level, l)
				}
			}

			logger.Error("probe")
			if got := strings.Contains(buf.String(), `"source"`); got != tt.wantSource {
				t.Errorf("level %q: source present = %v, want %v", tt.level, got, tt.wantSource)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		"Warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"info+2": slog.LevelInfo + 2,
		"":       slog.LevelInfo,
		"trace":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext(empty) is not slog.Default()")
	}

	first := logging.Discard()
	second := logging.Discard()
	ctx := logging.WithLogger(context.Background(), first)
	if logging.FromContext(ctx) != first {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(logging.WithLogger(ctx, second)) != second {
		t.Error("FromContext returned the outer logger, want the innermost")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	if logging.Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() logger has error level enabled")
	}
}
