package ws

// Inbound message types (desktop view to server)
const (
	MsgBounds        = "bounds"
	MsgBindWindow    = "bind_window"
	MsgUnbindWindow  = "unbind_window"
	MsgBindDock      = "bind_dock"
	MsgUnbindDock    = "unbind_dock"
	MsgTransitionEnd = "transition_end"
	MsgFrame         = "frame"
	MsgPing          = "ping"
)

// Outbound message types (server to desktop view)
const (
	MsgHello         = "hello"
	MsgTransition    = "transition"
	MsgTransform     = "transform"
	MsgOpacity       = "opacity"
	MsgPointerEvents = "pointer_events"
	MsgRequestFrame  = "request_frame"
	MsgPong          = "pong"
	MsgError         = "error"
)

// Hello is the first message on every connection
type Hello struct {
	ClientID string      `json:"client_id"`
	Options  interface{} `json:"options"`
	Launcher interface{} `json:"launcher"`
	Windows  interface{} `json:"windows"`
}
