package format

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds a single Lua formatting call.
const DefaultLuaTimeout = 100 * time.Millisecond

// Lua formats values by calling a global function defined in a Lua
// script. The function receives the raw value as a string and returns the
// display text (a string or a number).
//
// Scripts run with only the base, table, string and math libraries; file,
// OS and module loading functions are removed. Each call runs under a
// timeout, so a script that loops forever fails the call rather than
// stalling the ticker.
type Lua struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      string
	timeout time.Duration
	closed  bool
}

// LuaOption configures a Lua formatter.
type LuaOption func(*Lua)

// WithLuaTimeout sets the per-call timeout.
func WithLuaTimeout(d time.Duration) LuaOption {
	return func(l *Lua) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLuaFile loads the script at path and formats with its global fn.
func NewLuaFile(path, fn string, opts ...LuaOption) (*Lua, error) {
	return newLua(fn, opts, func(L *lua.LState) error { return L.DoFile(path) })
}

// NewLuaString loads code and formats with its global fn.
func NewLuaString(code, fn string, opts ...LuaOption) (*Lua, error) {
	return newLua(fn, opts, func(L *lua.LState) error { return L.DoString(code) })
}

func newLua(fn string, opts []LuaOption, load func(*lua.LState) error) (*Lua, error) {
	l := &Lua{
		L:       lua.NewState(lua.Options{SkipOpenLibs: true}),
		fn:      fn,
		timeout: DefaultLuaTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	openSafeLibraries(l.L)

	if err := l.withTimeout(func() error { return load(l.L) }); err != nil {
		l.L.Close()
		return nil, fmt.Errorf("loading lua formatter: %w", err)
	}
	if f := l.L.GetGlobal(fn); f.Type() != lua.LTFunction {
		l.L.Close()
		return nil, fmt.Errorf("lua formatter: %q is not a function (got %s)", fn, f.Type())
	}
	return l, nil
}

// openSafeLibraries opens only the libraries a formatter needs and removes
// the base functions that reach the file system or load code.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Format implements Formatter.
func (l *Lua) Format(value string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return "", ErrFormatterClosed
	}

	var out string
	err := l.withTimeout(func() error {
		if err := l.L.CallByParam(lua.P{
			Fn:      l.L.GetGlobal(l.fn),
			NRet:    1,
			Protect: true,
		}, lua.LString(value)); err != nil {
			return err
		}
		ret := l.L.Get(-1)
		l.L.Pop(1)

		switch ret.Type() {
		case lua.LTString, lua.LTNumber:
			out = ret.String()
			return nil
		default:
			return fmt.Errorf("%s returned %s, want string", l.fn, ret.Type())
		}
	})
	if err != nil {
		return "", fmt.Errorf("lua formatter: %w", err)
	}
	return out, nil
}

// withTimeout runs fn with the state bound to a deadline, recovering
// panics raised inside the VM.
func (l *Lua) withTimeout(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	l.L.SetContext(ctx)
	defer l.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state.
func (l *Lua) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.L.Close()
	l.closed = true
	return nil
}
