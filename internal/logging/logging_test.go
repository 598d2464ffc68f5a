package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log, err := New("debug", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be enabled")
	}

	log, err = New("bogus", "console")
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("unknown level must fall back to info")
	}
}
