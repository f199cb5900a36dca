// Package ws connects desktop views to the window manager over WebSocket.
//
// Every view receives state changes as they are published. The newest
// view also serves as the presentation port: it reports element rects
// and layout bounds, receives element style commands, and acknowledges
// transitions and frames so deferred window work can complete. When it
// disconnects the next newest view takes over, and its pending callbacks
// run as if the animations had finished.
//
// Each inbound message is handled inside a "stream.<type>" span when the
// hub has a tracer.
//
// Message Types (Client → Server):
//   - bounds: layout area size (width, height); from the bound view this
//     re-clamps every window to the new area
//   - bind_window, bind_dock: element rect for window_id
//   - unbind_window, unbind_dock: element removed
//   - transition_end: transition finished on window_id (target)
//   - frame: a frame was rendered
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - hello: options, launcher and windows on connect
//   - windows, launcher: state changes
//   - transition, transform, opacity, pointer_events: element commands
//   - request_frame: send a frame message after the next render
//   - pong, error
//
// Example Usage:
//
//	hub := ws.NewHub(binding, options).WithState(registry, store)
//	router.GET("/stream", hub.HandleConnection)
package ws
