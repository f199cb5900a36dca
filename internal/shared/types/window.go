package types

// Z-order values. Exactly one open window holds ZIndexActive.
const (
	ZIndexActive   = 101
	ZIndexInactive = 100
)

// Geometry is a window rectangle in layout pixels.
type Geometry struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSnapshot is a read-only copy of a window record.
// Maximized is derived from the geometry at the time of the snapshot.
type WindowSnapshot struct {
	ID        int       `json:"id"`
	PackageID string    `json:"package_id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	Geometry  Geometry  `json:"geometry"`
	Saved     *Geometry `json:"saved,omitempty"`
	ZIndex    int       `json:"z_index"`
	Minimized bool      `json:"minimized"`
	Maximized bool      `json:"maximized"`
	ParentID  int       `json:"parent_id,omitempty"`
	Children  []int     `json:"children,omitempty"`
}

// Active reports whether the snapshot holds the active z-order sentinel.
func (w WindowSnapshot) Active() bool {
	return w.ZIndex == ZIndexActive
}

// WindowStats contains window store statistics
type WindowStats struct {
	OpenWindows      int  `json:"open_windows"`
	MinimizedWindows int  `json:"minimized_windows"`
	MaximizedWindows int  `json:"maximized_windows"`
	OpenedTotal      int  `json:"opened_total"`
	ActiveWindowID   *int `json:"active_window_id,omitempty"`
}
