package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestErrorAppendsErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "fetch failed", errors.New("boom"), FieldLeague, "bl1")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "league=bl1") {
		t.Fatalf("expected error and league attrs, got %q", out)
	}
}

func TestHelpersUseLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	Debug(logger, "hidden")
	Info(logger, "shown")
	Warn(logger, "careful")
	Error(logger, "no cause", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug record filtered, got %q", out)
	}
	for _, want := range []string{"level=INFO msg=shown", "level=WARN msg=careful", "level=ERROR msg=\"no cause\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "error=") {
		t.Fatalf("expected no error attr for nil error, got %q", out)
	}
}
