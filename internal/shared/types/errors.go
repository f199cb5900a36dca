package types

import "errors"

// ErrDuplicateApp is returned when a package id is registered twice.
var ErrDuplicateApp = errors.New("app already registered")

// ErrUnknownApp is returned when a package id is not registered.
var ErrUnknownApp = errors.New("unknown app")

// ErrUnknownWindow is returned when a window id is not open.
var ErrUnknownWindow = errors.New("unknown window")
