package types

// RegisterAppRequest registers an app through the HTTP API.
// Dimensions accept a pixel number, "half" or "max".
type RegisterAppRequest struct {
	PackageID        string                 `json:"package_id" binding:"required"`
	Name             string                 `json:"name" binding:"required"`
	Icon             string                 `json:"icon"`
	DefaultWidth     interface{}            `json:"default_width,omitempty"`
	DefaultHeight    interface{}            `json:"default_height,omitempty"`
	DefaultMaximized bool                   `json:"default_maximized"`
	HiddenInDesktop  bool                   `json:"hidden_in_desktop"`
	Props            map[string]interface{} `json:"props,omitempty"`
	OnCloseScript    string                 `json:"on_close,omitempty"`
}

// OpenWindowRequest overrides the descriptor defaults for one window.
type OpenWindowRequest struct {
	Width     *int  `json:"width,omitempty"`
	Height    *int  `json:"height,omitempty"`
	Top       *int  `json:"top,omitempty"`
	Left      *int  `json:"left,omitempty"`
	Maximized *bool `json:"maximized,omitempty"`
}

// MoveRequest moves a window without animation.
type MoveRequest struct {
	Top  int `json:"top"`
	Left int `json:"left"`
}

// ResizeRequest resizes and positions a window without animation.
type ResizeRequest struct {
	Width  int `json:"width" binding:"required,gt=0"`
	Height int `json:"height" binding:"required,gt=0"`
	Top    int `json:"top"`
	Left   int `json:"left"`
}

// ChildWindowRequest spawns a child window for another app.
type ChildWindowRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

// Rect is a measured element rectangle in viewport pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Stream element targets.
const (
	TargetWindow = "window"
	TargetDock   = "dock"
)

// StreamMessage is the envelope of every stream frame in both directions.
// Target names the element kind of element commands and defaults to
// TargetWindow.
type StreamMessage struct {
	Type     string      `json:"type"`
	WindowID int         `json:"window_id,omitempty"`
	Target   string      `json:"target,omitempty"`
	Rect     *Rect       `json:"rect,omitempty"`
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
	Message  string      `json:"message,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}
