package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger("debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger = NewLogger("invalid")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", logger.GetLevel())
	}

	logger = NewLogger("")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info for empty level, got %s", logger.GetLevel())
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "WARN")
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("source", "mnemonic").Msg("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "source=mnemonic") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PROTOSTAR_TEST_VALUE", "")
	if got := GetEnv("PROTOSTAR_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
	t.Setenv("PROTOSTAR_TEST_VALUE", "set")
	if got := GetEnv("PROTOSTAR_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("expected set, got %s", got)
	}
}
