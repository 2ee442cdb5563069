package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the optional scoring hooks.
// Single-goroutine access only (simulation loop). Every hook has a Go
// fallback: a missing function or a script error returns the fallback.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core scripts first, then the hooks that may use them
	for _, sub := range []string{"core", "difficulty", "score"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// LoadString runs a chunk of Lua source. Used by tests and tools.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DifficultyScore calls calc_difficulty_score({score, distance, fallback}).
// fallback is the built-in score + floor(distance / divisor).
func (e *Engine) DifficultyScore(score int, distance float64, fallback int) int {
	t := e.vm.NewTable()
	t.RawSetString("score", lua.LNumber(score))
	t.RawSetString("distance", lua.LNumber(distance))
	t.RawSetString("fallback", lua.LNumber(fallback))
	return e.callTableIntFunc("calc_difficulty_score", t, fallback)
}

// KillScore calls calc_kill_score({kind, base}). base is the kind's table
// score.
func (e *Engine) KillScore(kind string, base int) int {
	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(kind))
	t.RawSetString("base", lua.LNumber(base))
	return e.callTableIntFunc("calc_kill_score", t, base)
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// callTableIntFunc calls an optional hook with one context table. The hook
// must return a number; anything else yields fallback.
func (e *Engine) callTableIntFunc(name string, ctx *lua.LTable, fallback int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return fallback
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua hook returned non-number", zap.String("func", name), zap.String("type", result.Type().String()))
		return fallback
	}
	return int(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
