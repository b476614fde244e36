// Package config provides the configuration system for the ticker.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority, applied with Set
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← TICKER_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ticker.toml or ticker.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Values are kept as a merged map and read back through typed section
// accessors such as Animation and Source. Accessors never fail; a value of
// the wrong type falls back to the default and is recorded in
// ConfigErrors. Validate checks the values that have a restricted range.
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("ticker.toml"))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	anim := cfg.Animation()
//
// # Environment Variables
//
// Any TICKER_SECTION_KEY variable sets section.key, for example
// TICKER_SOURCE_JSON_PATH sets source.json_path. A few short aliases exist:
// TICKER_LOG_LEVEL, TICKER_LOG_FILE, TICKER_PRESET, TICKER_DURATION,
// TICKER_FILE and TICKER_TEMPLATE.
package config
