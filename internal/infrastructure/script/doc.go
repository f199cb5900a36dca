/*
Package script runs app lifecycle hooks written in JavaScript.

Manifests may carry an on_close snippet. It is compiled once at seed time
and executed in a goja VM from a small pool whenever a window of the app
closes. The sandbox removes require, process, module and exports, turns
timers into no-ops, routes console output to zap, and interrupts any run
that exceeds the configured timeout.

# Usage

	hooks, err := script.NewHooks(script.DefaultConfig(), logger)
	onClose, err := hooks.CloseHook("calc", `console.log("closed", window.id)`)
*/
package script
