// Package main is the entry point for the ticker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/ticker/internal/app"
	"github.com/dshills/ticker/internal/config"
	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	file       string
	jsonPath   string
	interval   time.Duration
	plain      bool
	values     []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := config.New(config.WithFile(opts.configPath))
	if err := cfg.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return exitConfig
	}
	if err := applyFlags(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}

	stdinPiped := !term.IsTerminal(int(os.Stdin.Fd()))
	plain := opts.plain || !term.IsTerminal(int(os.Stdout.Fd()))

	// Logs go to stderr only when they cannot corrupt the screen.
	logCfg := app.LoggerConfig{
		Level:  cfg.Logging().Level,
		File:   cfg.Logging().File,
		Output: os.Stderr,
	}
	if logCfg.File == "" && !plain {
		logCfg.Disabled = true
	}
	logger, closeLog, err := app.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}
	defer closeLog()

	appOpts := app.Options{
		Config: cfg,
		Logger: logger,
	}
	if len(opts.values) == 0 && opts.file == "" && cfg.Source().File == "" && stdinPiped {
		appOpts.Source = source.NewLines(os.Stdin, "stdin", source.StopAtEOF())
		appOpts.ExitWhenDone = plain
	}

	if plain {
		appOpts.Plain = os.Stdout
	} else {
		screen, err := backend.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return exitError
		}
		appOpts.Backend = screen
	}

	application, err := app.New(appOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		if errors.Is(err, config.ErrValidationFailed) || errors.Is(err, app.ErrNoSource) {
			return exitConfig
		}
		return exitError
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if app.IsQuit(err) {
			return exitOK
		}
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}

// applyFlags layers command line settings over the loaded configuration.
func applyFlags(cfg *config.Config, opts options) error {
	set := func(path string, v any) error {
		if err := cfg.Set(path, v); err != nil {
			return fmt.Errorf("flag for %s: %w", path, err)
		}
		return nil
	}

	if opts.logLevel != "" {
		if err := set("logging.level", opts.logLevel); err != nil {
			return err
		}
	}
	if opts.logFile != "" {
		if err := set("logging.file", opts.logFile); err != nil {
			return err
		}
	}
	if opts.file != "" {
		if err := set("source.file", opts.file); err != nil {
			return err
		}
	}
	if opts.jsonPath != "" {
		if err := set("source.json_path", opts.jsonPath); err != nil {
			return err
		}
	}
	if opts.interval > 0 {
		if err := set("source.interval", opts.interval.String()); err != nil {
			return err
		}
	}
	if len(opts.values) > 0 {
		values := make([]any, len(opts.values))
		for i, v := range opts.values {
			values[i] = v
		}
		if err := set("source.values", values); err != nil {
			return err
		}
	}
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.file, "file", "", "Watch a file and show its content")
	flag.StringVar(&opts.file, "f", "", "Watch a file and show its content (shorthand)")
	flag.StringVar(&opts.jsonPath, "json-path", "", "Extract the value from the watched JSON file")
	flag.DurationVar(&opts.interval, "interval", 0, "Delay between cycled values")
	flag.BoolVar(&opts.plain, "plain", false, "Print settled values instead of drawing")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ticker - animated column ticker for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ticker [options] [values...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ticker 1234 1299 99 100              Cycle through values\n")
		fmt.Fprintf(os.Stderr, "  ticker -f price.json -json-path usd  Follow a JSON field\n")
		fmt.Fprintf(os.Stderr, "  tail -f counts.log | ticker          Show each line read\n")
		fmt.Fprintf(os.Stderr, "  ticker -c ticker.toml                Use a config file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(exitOK)
	}

	if showVersion {
		fmt.Printf("ticker %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(exitOK)
	}

	opts.values = flag.Args()
	return opts
}
