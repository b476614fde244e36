package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/ticker/internal/anim"
	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/ticker/alphabet"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// AlphabetConfig selects the units columns scroll through.
type AlphabetConfig struct {
	// Preset names a built-in alphabet ("number", "alphabetical", "hex", "price").
	Preset string

	// Units, when set, is the literal alphabet and overrides Preset.
	Units string
}

// AnimationConfig controls transition timing.
type AnimationConfig struct {
	// Duration is the length of one transition.
	Duration time.Duration

	// Interpolator is the easing curve name.
	Interpolator string

	// FPS is the frame rate while animating.
	FPS int
}

// StyleConfig holds colours as "default", a name (black, white, red, green),
// "#RGB" or "#RRGGBB".
type StyleConfig struct {
	Foreground string
	Background string

	// Highlight is the colour changing columns fade from.
	Highlight string

	// Align places the ticker on its row ("left", "center", "right").
	Align string
}

// SourceConfig describes where ticker values come from.
type SourceConfig struct {
	// Values are cycled in order when no file is watched.
	Values []string

	// Interval is the delay between cycled values.
	Interval time.Duration

	// File is watched for changes; its content becomes the value.
	File string

	// JSONPath extracts the value from a JSON file (gjson syntax).
	JSONPath string
}

// FormatConfig turns raw values into display text.
type FormatConfig struct {
	// Template is a printf-style template with one verb.
	Template string

	// LuaScript is a Lua file defining the formatting function.
	LuaScript string

	// LuaFunction is the global function LuaScript must define.
	LuaFunction string
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string

	// File is the log file path (empty for stderr).
	File string
}

// Alphabet returns the alphabet settings.
func (c *Config) Alphabet() AlphabetConfig {
	return AlphabetConfig{
		Preset: c.getStringOr("alphabet.preset", "number"),
		Units:  c.getStringOr("alphabet.units", ""),
	}
}

// Animation returns the animation settings.
func (c *Config) Animation() AnimationConfig {
	return AnimationConfig{
		Duration:     c.getDurationOr("animation.duration", 350*time.Millisecond),
		Interpolator: c.getStringOr("animation.interpolator", "accelerate-decelerate"),
		FPS:          c.getIntOr("animation.fps", 60),
	}
}

// Style returns the style settings.
func (c *Config) Style() StyleConfig {
	return StyleConfig{
		Foreground: c.getStringOr("style.foreground", "default"),
		Background: c.getStringOr("style.background", "default"),
		Highlight:  c.getStringOr("style.highlight", "default"),
		Align:      c.getStringOr("style.align", "center"),
	}
}

// Source returns the source settings.
func (c *Config) Source() SourceConfig {
	return SourceConfig{
		Values:   c.getStringSliceOr("source.values", nil),
		Interval: c.getDurationOr("source.interval", 2*time.Second),
		File:     c.getStringOr("source.file", ""),
		JSONPath: c.getStringOr("source.json_path", ""),
	}
}

// Format returns the formatter settings.
func (c *Config) Format() FormatConfig {
	return FormatConfig{
		Template:    c.getStringOr("format.template", ""),
		LuaScript:   c.getStringOr("format.lua_script", ""),
		LuaFunction: c.getStringOr("format.lua_function", "format"),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Validate checks every section and returns all problems joined, including
// type errors recorded by the accessors.
func (c *Config) Validate() error {
	var errs []error

	if a := c.Alphabet(); a.Units != "" {
		if _, err := alphabet.Parse(a.Units); err != nil {
			errs = append(errs, &ValidationError{Path: "alphabet.units", Message: err.Error(), Value: a.Units})
		}
	} else if _, err := alphabet.Preset(a.Preset); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "alphabet.preset",
			Message: "must be one of " + strings.Join(alphabet.PresetNames(), ", "),
			Value:   a.Preset,
		})
	}

	an := c.Animation()
	if an.Duration < 0 {
		errs = append(errs, &ValidationError{Path: "animation.duration", Message: "must not be negative", Value: an.Duration})
	}
	if _, err := anim.ParseInterpolator(an.Interpolator); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "animation.interpolator",
			Message: "must be one of " + strings.Join(anim.InterpolatorNames(), ", "),
			Value:   an.Interpolator,
		})
	}
	if an.FPS <= 0 || an.FPS > 240 {
		errs = append(errs, &ValidationError{Path: "animation.fps", Message: "must be between 1 and 240", Value: an.FPS})
	}

	st := c.Style()
	for path, v := range map[string]string{
		"style.foreground": st.Foreground,
		"style.background": st.Background,
		"style.highlight":  st.Highlight,
	} {
		if _, err := core.ParseColor(v); err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: "invalid colour", Value: v})
		}
	}
	switch st.Align {
	case "left", "center", "centre", "right":
	default:
		errs = append(errs, &ValidationError{Path: "style.align", Message: "must be left, center or right", Value: st.Align})
	}

	src := c.Source()
	if src.File == "" && src.Interval <= 0 && len(src.Values) > 1 {
		errs = append(errs, &ValidationError{Path: "source.interval", Message: "must be positive", Value: src.Interval})
	}
	if src.JSONPath != "" && src.File == "" {
		errs = append(errs, &ValidationError{Path: "source.json_path", Message: "requires source.file", Value: src.JSONPath})
	}

	if f := c.Format(); f.LuaScript != "" && f.LuaFunction == "" {
		errs = append(errs, &ValidationError{Path: "format.lua_function", Message: "required with format.lua_script", Value: ""})
	}

	if lvl := c.Logging().Level; lvl != "" {
		if _, err := zapcore.ParseLevel(lvl); err != nil {
			errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: lvl})
		}
	}

	for path, err := range c.ConfigErrors() {
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}
	return errors.Join(errs...)
}

// These methods only return the default for ErrSettingNotFound.
// Type errors return the default too, but are recorded so Validate can
// report the configuration problem.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return append([]string(nil), defaultValue...)
	}
	return v
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
