package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Runtime wraps a goja VM with the hook sandbox applied.
// A Runtime runs one script at a time.
type Runtime struct {
	vm     *goja.Runtime
	config Config
	logger *zap.Logger
	mu     sync.Mutex

	console   []LogEntry
	consoleMu sync.Mutex
}

// New creates a new sandboxed runtime
func New(config Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		config: config,
		logger: logger,
	}
	if err := r.reset(); err != nil {
		return nil, err
	}
	return r, nil
}

// Compile parses a hook body once so it can run in any runtime.
func Compile(name, src string) (*goja.Program, error) {
	prog, err := goja.Compile(name, src, true)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", name, err)
	}
	return prog, nil
}

// Execute runs a compiled program with the given globals on a fresh
// sandbox. The run is interrupted when the configured timeout elapses or
// ctx is done.
func (r *Runtime) Execute(ctx context.Context, prog *goja.Program, globals map[string]interface{}) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vm == nil {
		return nil, fmt.Errorf("runtime closed")
	}

	start := time.Now()

	r.consoleMu.Lock()
	r.console = nil
	r.consoleMu.Unlock()

	// Nothing a script defines or reassigns survives into the next run
	defer func() {
		if err := r.reset(); err != nil {
			r.logger.Error("failed to reset runtime", zap.Error(err))
			r.vm = nil
		}
	}()

	for name, value := range globals {
		if err := r.vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("failed to set global %s: %w", name, err)
		}
	}

	timer := time.NewTimer(r.config.Timeout)
	defer timer.Stop()

	done := make(chan struct{})
	watcher := make(chan struct{})

	go func() {
		defer close(watcher)
		select {
		case <-timer.C:
			r.vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			r.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	val, err := r.vm.RunProgram(prog)

	// The watcher must be gone before the interrupt flag is cleared
	close(done)
	<-watcher
	r.vm.ClearInterrupt()

	result := &Result{Duration: time.Since(start)}

	r.consoleMu.Lock()
	result.Console = append([]LogEntry{}, r.console...)
	r.consoleMu.Unlock()

	if err != nil {
		return result, err
	}

	result.Value = exportValue(val)
	return result, nil
}

// reset replaces the VM and applies the sandbox globals.
func (r *Runtime) reset() error {
	r.vm = goja.New()
	r.vm.SetMaxCallStackSize(1024)

	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := r.vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}

	console := r.vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error"} {
		if err := console.Set(level, r.makeConsoleFunc(level)); err != nil {
			return err
		}
	}
	if err := r.vm.Set("console", console); err != nil {
		return err
	}

	// Timers would outlive the run
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	if err := r.vm.Set("setTimeout", noop); err != nil {
		return err
	}
	return r.vm.Set("setInterval", noop)
}

// makeConsoleFunc creates a console function
func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if !r.config.EnableConsole {
			return goja.Undefined()
		}

		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		msg := strings.Join(parts, " ")

		r.consoleMu.Lock()
		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: msg,
			Time:    time.Now(),
		})
		r.consoleMu.Unlock()

		switch level {
		case "warn":
			r.logger.Warn(msg)
		case "error":
			r.logger.Error(msg)
		default:
			r.logger.Info(msg)
		}

		return goja.Undefined()
	}
}

// exportValue converts goja value to Go value
func exportValue(val goja.Value) interface{} {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}

// Usable reports whether the runtime can still execute
func (r *Runtime) Usable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm != nil
}

// Close releases resources
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vm = nil
	r.console = nil
	return nil
}
