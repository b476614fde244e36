package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// File emits the content of a file each time it changes.
//
// The parent directory is watched rather than the file itself so that
// editors and writers that replace the file by rename are still seen.
type File struct {
	path     string
	jsonPath string
	debounce time.Duration
	logger   *zap.Logger
}

// FileOption configures a File source.
type FileOption func(*File)

// WithJSONPath extracts the value at path (gjson syntax) instead of using
// the whole file.
func WithJSONPath(path string) FileOption {
	return func(f *File) {
		f.jsonPath = path
	}
}

// WithDebounce coalesces bursts of writes. The default is 50ms.
func WithDebounce(d time.Duration) FileOption {
	return func(f *File) {
		f.debounce = d
	}
}

// WithLogger sets the logger for read and watch errors.
func WithLogger(l *zap.Logger) FileOption {
	return func(f *File) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFile creates a file source.
func NewFile(path string, opts ...FileOption) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	f := &File{
		path:     abs,
		debounce: 50 * time.Millisecond,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name implements Source.
func (f *File) Name() string { return "file:" + f.path }

// Run implements Source. A missing file is not an error; the source emits
// once it appears. Unreadable content is logged and skipped.
func (f *File) Run(ctx context.Context, emit func(string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(f.path), err)
	}

	last, seen := "", false
	publish := func() {
		value, err := f.read()
		if err != nil {
			if !os.IsNotExist(err) {
				f.logger.Warn("skipping unreadable value", zap.String("path", f.path), zap.Error(err))
			}
			return
		}
		if seen && value == last {
			return
		}
		last, seen = value, true
		emit(value)
	}
	publish()

	timer := time.NewTimer(f.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(f.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watch error", zap.String("path", f.path), zap.Error(err))

		case <-timer.C:
			publish()
		}
	}
}

func (f *File) read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return Extract(data, f.jsonPath)
}

// Extract returns the value held in data. With an empty jsonPath this is
// the trimmed text; otherwise data must be JSON and the result is the
// string form of the value at jsonPath.
func Extract(data []byte, jsonPath string) (string, error) {
	if jsonPath == "" {
		return string(bytes.TrimSpace(data)), nil
	}
	if !gjson.ValidBytes(data) {
		return "", ErrInvalidJSON
	}
	res := gjson.GetBytes(data, jsonPath)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, jsonPath)
	}
	return strings.TrimSpace(res.String()), nil
}
