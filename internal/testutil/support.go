package testutil

import (
	"bytes"
	"log/slog"
	"time"
	_ "time/tzdata"
)

// NewBufferLogger returns a debug-level text logger writing into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// NowAt returns a clock pinned to t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Berlin builds a wall-clock time in Europe/Berlin, panicking when tzdata is missing.
func Berlin(year int, month time.Month, day, hour, min int) time.Time {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}
