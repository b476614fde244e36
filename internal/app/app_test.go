package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/ticker/internal/config"
	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/source"
	"github.com/dshills/ticker/internal/ticker/alphabet"
)

func newConfig(t *testing.T, settings map[string]any) *config.Config {
	t.Helper()
	cfg := config.New(config.WithEnvPrefix(""))
	if err := cfg.Set("animation.duration", "0s"); err != nil {
		t.Fatal(err)
	}
	for path, v := range settings {
		if err := cfg.Set(path, v); err != nil {
			t.Fatalf("Set(%q): %v", path, err)
		}
	}
	return cfg
}

func runWithTimeout(t *testing.T, a *App) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := a.Run(ctx)
	if ctx.Err() != nil {
		t.Fatal("Run did not return before the timeout")
	}
	return err
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{Backend: backend.NewNullBackend(10, 1)})
	if !errors.Is(err, ErrInitialization) {
		t.Errorf("expected ErrInitialization, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		"source.values":      []any{"1"},
		"animation.duration": "-1s",
	})
	_, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(10, 1)})
	if !errors.Is(err, ErrInitialization) || !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("expected validation failure, got %v", err)
	}
}

func TestNewWithoutSource(t *testing.T) {
	_, err := New(Options{Config: newConfig(t, nil), Backend: backend.NewNullBackend(10, 1)})
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}

func TestNewWithoutBackend(t *testing.T) {
	cfg := newConfig(t, map[string]any{"source.values": []any{"1"}})
	if _, err := New(Options{Config: cfg}); !errors.Is(err, ErrInitialization) {
		t.Errorf("expected ErrInitialization, got %v", err)
	}
}

func TestNewResolvesAlphabet(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		"source.values":   []any{"1"},
		"alphabet.preset": "hex",
	})
	a, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(10, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if got := a.Manager().Alphabet().String(); got != alphabet.HexUnits {
		t.Errorf("expected hex units, got %q", got)
	}
	if a.Session() == "" {
		t.Error("expected a session id")
	}
}

func TestRunPlainPrintsSettledLines(t *testing.T) {
	var out bytes.Buffer
	core, logs := observer.New(zapcore.DebugLevel)

	a, err := New(Options{
		Config:       newConfig(t, nil),
		Source:       source.NewLines(strings.NewReader("12\nAB\n12\n345\n"), "test", source.StopAtEOF()),
		Logger:       zap.New(core),
		Plain:        &out,
		ExitWhenDone: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := runWithTimeout(t, a); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := out.String(), "12\n345\n"; got != want {
		t.Errorf("plain output = %q, want %q", got, want)
	}
	if n := logs.FilterMessage("value rejected").Len(); n != 1 {
		t.Errorf("expected one rejected value, got %d", n)
	}
	if n := logs.FilterMessage("debounced").Len(); n != 1 {
		t.Errorf("expected one debounced value, got %d", n)
	}
	for _, entry := range logs.FilterMessage("ticker ready").All() {
		if entry.ContextMap()["session"] != a.Session() {
			t.Errorf("expected session field %q, got %v", a.Session(), entry.ContextMap())
		}
	}
}

func TestRunPlainTemplate(t *testing.T) {
	var out bytes.Buffer
	cfg := newConfig(t, map[string]any{
		"alphabet.preset": "price",
		"format.template": "$%.2f",
	})

	a, err := New(Options{
		Config:       cfg,
		Source:       source.NewLines(strings.NewReader("3.5\n1234.567\n"), "test", source.StopAtEOF()),
		Plain:        &out,
		ExitWhenDone: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := runWithTimeout(t, a); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "$3.50\n$1234.57\n"; got != want {
		t.Errorf("plain output = %q, want %q", got, want)
	}
}

func TestRunPlainLuaThenTemplate(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fmt.lua")
	if err := os.WriteFile(script, []byte("function double(v) return tonumber(v) * 2 end"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cfg := newConfig(t, map[string]any{
		"format.lua_script":   script,
		"format.lua_function": "double",
		"format.template":     "%d",
	})
	a, err := New(Options{
		Config:       cfg,
		Source:       source.NewLines(strings.NewReader("21\n"), "test", source.StopAtEOF()),
		Plain:        &out,
		ExitWhenDone: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := runWithTimeout(t, a); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if got := out.String(); got != "42\n" {
		t.Errorf("plain output = %q, want %q", got, "42\n")
	}
}

func TestRunAnimatesOnBackend(t *testing.T) {
	b := backend.NewNullBackend(10, 3)
	core, logs := observer.New(zapcore.DebugLevel)
	a, err := New(Options{
		Config:       newConfig(t, map[string]any{"style.align": "right"}),
		Backend:      b,
		Logger:       zap.New(core),
		Source:       source.NewLines(strings.NewReader("12\n1299\n"), "test", source.StopAtEOF()),
		ExitWhenDone: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := runWithTimeout(t, a); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.Row(1); got != "      1299" {
		t.Errorf("row = %q, want %q", got, "      1299")
	}
	if got := string(a.Manager().CurrentText()); got != "1299" {
		t.Errorf("current text = %q", got)
	}
	settled := logs.FilterMessage("value settled").FilterField(zap.String("text", "1299"))
	if settled.Len() != 1 {
		t.Errorf("expected one settle report for 1299, got %d", settled.Len())
	}
}

func TestRunQuitKey(t *testing.T) {
	b := backend.NewNullBackend(10, 1)
	cfg := newConfig(t, map[string]any{"source.values": []any{"7"}})
	a, err := New(Options{Config: cfg, Backend: b})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'})
	err = runWithTimeout(t, a)
	if !IsQuit(err) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := newConfig(t, map[string]any{"source.values": []any{"7", "8"}, "source.interval": "10ms"})
	a, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(10, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("cancellation should end Run cleanly, got %v", err)
	}
}

func TestRunSourceFailure(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		"source.file": filepath.Join(t.TempDir(), "missing", "value.txt"),
	})
	a, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(10, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	err = runWithTimeout(t, a)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "run" {
		t.Errorf("expected run OperationError, got %v", err)
	}
}
