// Package types provides shared data structures for the desktop backend.
//
// This package defines the types passed between the registry, the window
// store, the HTTP API and the stream handler, so that none of them has to
// import another just to share a struct.
//
// Core Types:
//   - AppDescriptor: Immutable registration record for a launchable app
//   - LauncherEntry: Public projection of an app for desktop/launcher views
//   - Dimension: Default window size (pixels, "half", "max" or unset)
//   - Geometry: Window position and size in pixels
//   - WindowSnapshot: Read-only copy of a window record for rendering
//
// Request Types:
//   - RegisterAppRequest, OpenWindowRequest: Registry and launch calls
//   - MoveRequest, ResizeRequest: Direct geometry edits
//   - StreamMessage: Stream protocol envelope
//
// Errors:
//   - ErrDuplicateApp, ErrUnknownApp, ErrUnknownWindow
//
// Example Usage:
//
//	desc := &types.AppDescriptor{
//	    PackageID:    "calc",
//	    Name:         "Calculator",
//	    DefaultWidth: types.Pixels(300),
//	}
package types
