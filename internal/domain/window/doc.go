// Package window holds the open windows of a desktop.
//
// A Store owns every window record and serialises all operations behind
// one mutex. Controllers are thin handles keyed by window id; they
// mutate geometry, z-order and minimize state through the store and
// drive animation through a presentation.Port. Maximized is never
// stored: a window is maximized exactly when its geometry equals the
// layout oracle's bounds at the origin.
//
// Transition-end and next-frame callbacks re-acquire the store lock and
// check that the window still exists, so late notifications after a
// close are harmless. OnClose hooks run after the lock is released.
package window
