package layout

import (
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Default fallback bounds used while no layout element is measurable.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Source measures the window layout area.
type Source interface {
	Bounds() (width, height int, ok bool)
}

// Oracle answers the maximum width and height a window may occupy.
type Oracle struct {
	mu        sync.RWMutex
	source    Source
	fallbackW int
	fallbackH int
}

// NewOracle creates an unbound oracle. Non-positive fallbacks use the defaults.
func NewOracle(fallbackWidth, fallbackHeight int) *Oracle {
	if fallbackWidth <= 0 {
		fallbackWidth = DefaultWidth
	}
	if fallbackHeight <= 0 {
		fallbackHeight = DefaultHeight
	}
	return &Oracle{fallbackW: fallbackWidth, fallbackH: fallbackHeight}
}

// Bind sets the measurement source.
func (o *Oracle) Bind(source Source) {
	o.mu.Lock()
	o.source = source
	o.mu.Unlock()
}

// Unbind removes the measurement source.
func (o *Oracle) Unbind() {
	o.mu.Lock()
	o.source = nil
	o.mu.Unlock()
}

// Size returns the maximum width and height. Each axis falls back
// independently when the source reports nothing usable for it.
func (o *Oracle) Size() (int, int) {
	o.mu.RLock()
	source, fw, fh := o.source, o.fallbackW, o.fallbackH
	o.mu.RUnlock()

	if source == nil {
		return fw, fh
	}
	w, h, ok := source.Bounds()
	if !ok {
		return fw, fh
	}
	if w <= 0 {
		w = fw
	}
	if h <= 0 {
		h = fh
	}
	return w, h
}

// MaxWidth returns the maximum window width.
func (o *Oracle) MaxWidth() int {
	w, _ := o.Size()
	return w
}

// MaxHeight returns the maximum window height.
func (o *Oracle) MaxHeight() int {
	_, h := o.Size()
	return h
}

// Maximized returns the geometry of a maximized window.
func (o *Oracle) Maximized() types.Geometry {
	w, h := o.Size()
	return types.Geometry{Width: w, Height: h}
}

// IsMaximized reports whether g covers the whole layout area.
func (o *Oracle) IsMaximized(g types.Geometry) bool {
	return g == o.Maximized()
}

// Clamp limits width and height to the layout area. A dimension that
// reaches the maximum pins its coordinate to 0.
func (o *Oracle) Clamp(g types.Geometry) types.Geometry {
	w, h := o.Size()
	if g.Width > w {
		g.Width = w
	}
	if g.Height > h {
		g.Height = h
	}
	if g.Width >= w {
		g.Left = 0
	}
	if g.Height >= h {
		g.Top = 0
	}
	return g
}
