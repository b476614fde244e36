package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ticker/internal/config/loader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_Defaults(t *testing.T) {
	c := New(WithEnvPrefix(""))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	an := c.Animation()
	if an.Duration != 350*time.Millisecond || an.FPS != 60 || an.Interpolator != "accelerate-decelerate" {
		t.Errorf("unexpected animation defaults %+v", an)
	}
	if got := c.Alphabet().Preset; got != "number" {
		t.Errorf("preset = %q, want number", got)
	}
	if got := c.Source().Interval; got != 2*time.Second {
		t.Errorf("interval = %v, want 2s", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfig_LoadTOML(t *testing.T) {
	path := writeFile(t, "ticker.toml", `
[alphabet]
preset = "price"

[animation]
duration = "1s"
interpolator = "linear"

[source]
values = ["$1.00", "$12.50"]
interval = 500

[style]
highlight = "#00FF00"
`)

	c := New(WithFile(path), WithEnvPrefix(""))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := c.Alphabet().Preset; got != "price" {
		t.Errorf("preset = %q", got)
	}
	an := c.Animation()
	if an.Duration != time.Second || an.Interpolator != "linear" || an.FPS != 60 {
		t.Errorf("unexpected animation %+v", an)
	}
	src := c.Source()
	if diff := cmp.Diff([]string{"$1.00", "$12.50"}, src.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if src.Interval != 500*time.Millisecond {
		t.Errorf("interval = %v, want 500ms", src.Interval)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfig_LoadYAML(t *testing.T) {
	path := writeFile(t, "ticker.yaml", `
logging:
  level: debug
format:
  template: "%s USD"
`)

	c := New(WithFile(path), WithEnvPrefix(""))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := c.Logging().Level; got != "debug" {
		t.Errorf("level = %q, want debug", got)
	}
	if got := c.Format().Template; got != "%s USD" {
		t.Errorf("template = %q", got)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	c := New(WithFile(filepath.Join(t.TempDir(), "none.toml")), WithEnvPrefix(""))
	if err := c.Load(context.Background()); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}

func TestConfig_LoadParseError(t *testing.T) {
	path := writeFile(t, "bad.toml", "[animation\n")

	c := New(WithFile(path), WithEnvPrefix(""))
	err := c.Load(context.Background())
	var parseErr *loader.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *loader.ParseError, got %v", err)
	}
}

func TestConfig_LoadUnsupportedFormat(t *testing.T) {
	c := New(WithFile("ticker.ini"), WithEnvPrefix(""))
	if err := c.Load(context.Background()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "ticker.toml", `
[animation]
fps = 30
duration = "1s"
`)
	t.Setenv("TICKER_ANIMATION_FPS", "24")
	t.Setenv("TICKER_DURATION", "200ms")

	c := New(WithFile(path))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	an := c.Animation()
	if an.FPS != 24 {
		t.Errorf("fps = %d, want 24 from env", an.FPS)
	}
	if an.Duration != 200*time.Millisecond {
		t.Errorf("duration = %v, want 200ms from env", an.Duration)
	}
}

func TestConfig_EnvListValues(t *testing.T) {
	t.Setenv("TICKER_SOURCE_VALUES", "1,2,3")

	c := New()
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, c.Source().Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Set(t *testing.T) {
	c := New(WithEnvPrefix(""))
	if err := c.Set("source.file", "/tmp/price"); err != nil {
		t.Fatal(err)
	}
	if got := c.Source().File; got != "/tmp/price" {
		t.Errorf("file = %q", got)
	}
	if err := c.Set("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
	if err := c.Set("source.file.deeper", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath through a scalar, got %v", err)
	}
}

func TestConfig_Getters(t *testing.T) {
	c := New(WithEnvPrefix(""))

	if _, err := c.GetString("nope.nothing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("expected ErrSettingNotFound, got %v", err)
	}
	if _, err := c.GetInt("style.align"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	c.Set("x.flag", true)
	if v, err := c.GetBool("x.flag"); err != nil || !v {
		t.Errorf("GetBool = %v, %v", v, err)
	}
	c.Set("x.ratio", 2.0)
	if v, err := c.GetInt("x.ratio"); err != nil || v != 2 {
		t.Errorf("GetInt of whole float = %v, %v", v, err)
	}
	c.Set("x.d", 3*time.Second)
	if v, err := c.GetDuration("x.d"); err != nil || v != 3*time.Second {
		t.Errorf("GetDuration = %v, %v", v, err)
	}
	c.Set("x.bad", "soon")
	if _, err := c.GetDuration("x.bad"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestConfig_MergedIsACopy(t *testing.T) {
	c := New(WithEnvPrefix(""))
	m := c.Merged()
	m["logging"].(map[string]any)["level"] = "error"

	if got := c.Logging().Level; got != "info" {
		t.Errorf("Merged should return a copy, level is now %q", got)
	}
}
