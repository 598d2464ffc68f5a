package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
)

func newConsole(t *testing.T, doc string) (*console, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	store := config.NewStore(config.NewLoader(dir), nil)
	if _, err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return &console{store: store, rng: roll.NewSeededRNG(3), log: zap.NewNop(), out: &out}, &out, dir
}

func TestConsoleReload(t *testing.T) {
	c, out, dir := newConsole(t, "version: \"1\"\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("version: \"2\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.serve(context.Background(), strings.NewReader("reload\nstatus\n")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `reloaded config version "2"`) {
		t.Fatalf("output = %s", out)
	}

	out.Reset()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mob-spawn: {multiplier: 0}\n"), 0o644)
	c.exec(context.Background(), "reload")
	if !strings.Contains(out.String(), "keeping previous config") || c.store.Current().Version != "2" {
		t.Fatalf("bad reload must keep version 2: %s", out)
	}
}

func TestConsoleSimulate(t *testing.T) {
	c, out, _ := newConsole(t, `
replacement-spawn:
  zombie: {husk: 1.0}
`)
	c.exec(context.Background(), "simulate zombie natural 20 2")
	got := out.String()
	if !strings.Contains(got, "2 trials x 20 natural spawns of zombie") || !strings.Contains(got, "husk") {
		t.Fatalf("output = %s", got)
	}

	out.Reset()
	c.exec(context.Background(), "simulate zombi")
	if !strings.Contains(out.String(), "unknown entity") {
		t.Fatalf("output = %s", out)
	}
}

func TestConsoleQuitStopsServing(t *testing.T) {
	c, out, _ := newConsole(t, "version: \"1\"\n")
	if err := c.serve(context.Background(), strings.NewReader("quit\nstatus\n")); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "version:") {
		t.Fatalf("commands after quit must not run")
	}
}
