// Package presentation defines the port between window controllers and
// whatever renders the desktop.
//
// Controllers never touch a renderer directly. They look elements up on
// a Port, measure them, set transitions, transforms, opacity and pointer
// events, and register one-shot callbacks for transition end and the
// next frame. A Binding swaps the live renderer in and out; Recorder is
// an in-memory Port for tests and headless use.
package presentation
