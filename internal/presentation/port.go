package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Animation timings used by window controllers.
const (
	MaximizeDuration = 250 * time.Millisecond
	MinimizeDuration = 300 * time.Millisecond
)

// Transition describes which element properties animate and for how long.
type Transition struct {
	Properties []string      `json:"properties,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// NoTransition disables animation on an element.
var NoTransition = Transition{}

// GeometryTransition animates position and size.
func GeometryTransition(d time.Duration) Transition {
	return Transition{Properties: []string{"top", "left", "width", "height"}, Duration: d}
}

// FadeTransition animates transform and opacity.
func FadeTransition(d time.Duration) Transition {
	return Transition{Properties: []string{"transform", "opacity"}, Duration: d}
}

// IsNone reports whether the transition disables animation.
func (t Transition) IsNone() bool {
	return len(t.Properties) == 0 || t.Duration <= 0
}

// String renders the transition as a CSS value.
func (t Transition) String() string {
	if t.IsNone() {
		return "none"
	}
	secs := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", t.Duration.Seconds()), "0"), ".")
	parts := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		parts[i] = fmt.Sprintf("%s %ss ease", p, secs)
	}
	return strings.Join(parts, ", ")
}

// Transform is a translate followed by a scale about the element center.
type Transform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
}

// Identity leaves an element where layout put it.
var Identity = Transform{ScaleX: 1, ScaleY: 1}

// IsIdentity reports whether t leaves the element untouched.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// String renders the transform as a CSS value.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g, %g)", t.TranslateX, t.TranslateY, t.ScaleX, t.ScaleY)
}

// FitTransform maps the from rectangle onto the to rectangle: centers
// coincide and sizes match. A degenerate from axis keeps scale 1.
func FitTransform(from, to types.Rect) Transform {
	t := Identity
	if from.Width > 0 {
		t.ScaleX = to.Width / from.Width
	}
	if from.Height > 0 {
		t.ScaleY = to.Height / from.Height
	}
	t.TranslateX = (to.Left + to.Width/2) - (from.Left + from.Width/2)
	t.TranslateY = (to.Top + to.Height/2) - (from.Top + from.Height/2)
	return t
}

// Element is a rendered node a controller can measure and style.
// Implementations must not block.
type Element interface {
	// Measure returns the element's current viewport rectangle.
	Measure() (types.Rect, bool)
	SetTransition(Transition)
	SetTransform(Transform)
	SetOpacity(float64)
	SetPointerEvents(enabled bool)
	// OnTransitionEnd registers a one-shot callback for the next
	// transition end, replacing any pending one. The callback must run
	// on another goroutine or a later call, never inside this one.
	OnTransitionEnd(fn func())
}

// Port reaches the rendered desktop. Lookups report false while the
// renderer has not bound the element.
type Port interface {
	Window(id int) (Element, bool)
	DockIcon(id int) (Element, bool)
	// Bounds reports the size of the window layout area.
	Bounds() (width, height int, ok bool)
	// NextFrame defers fn until after the next render. Like
	// OnTransitionEnd it never runs fn synchronously.
	NextFrame(fn func())
}

// Detached is a Port with nothing rendered.
type Detached struct{}

// Window reports no element.
func (Detached) Window(int) (Element, bool) { return nil, false }

// DockIcon reports no element.
func (Detached) DockIcon(int) (Element, bool) { return nil, false }

// Bounds reports no size.
func (Detached) Bounds() (int, int, bool) { return 0, 0, false }

// NextFrame runs fn on its own goroutine.
func (Detached) NextFrame(fn func()) { go fn() }
