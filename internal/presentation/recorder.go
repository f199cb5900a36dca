package presentation

import (
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Recorder is an in-memory Port. Callbacks queue until the owner fires
// them with EndTransition or FlushFrames, so callers control when
// asynchronous work happens.
type Recorder struct {
	mu     sync.Mutex
	width  int
	height int
	bounds bool
	wins   map[int]*RecordedElement
	docks  map[int]*RecordedElement
	frames []func()
}

// NewRecorder creates a recorder without bounds or elements.
func NewRecorder() *Recorder {
	return &Recorder{
		wins:  make(map[int]*RecordedElement),
		docks: make(map[int]*RecordedElement),
	}
}

// SetBounds sets the layout area size.
func (r *Recorder) SetBounds(width, height int) {
	r.mu.Lock()
	r.width, r.height, r.bounds = width, height, true
	r.mu.Unlock()
}

// ClearBounds forgets the layout area size.
func (r *Recorder) ClearBounds() {
	r.mu.Lock()
	r.bounds = false
	r.mu.Unlock()
}

// BindWindow registers the rendered element of a window.
func (r *Recorder) BindWindow(id int, rect types.Rect) *RecordedElement {
	el := newRecordedElement(rect)
	r.mu.Lock()
	r.wins[id] = el
	r.mu.Unlock()
	return el
}

// UnbindWindow forgets the rendered element of a window.
func (r *Recorder) UnbindWindow(id int) {
	r.mu.Lock()
	delete(r.wins, id)
	r.mu.Unlock()
}

// BindDockIcon registers the dock icon element of a window.
func (r *Recorder) BindDockIcon(id int, rect types.Rect) *RecordedElement {
	el := newRecordedElement(rect)
	r.mu.Lock()
	r.docks[id] = el
	r.mu.Unlock()
	return el
}

// UnbindDockIcon forgets the dock icon element of a window.
func (r *Recorder) UnbindDockIcon(id int) {
	r.mu.Lock()
	delete(r.docks, id)
	r.mu.Unlock()
}

// EndTransition fires the pending transition-end callback of a window
// element. It reports whether a callback ran.
func (r *Recorder) EndTransition(id int) bool {
	r.mu.Lock()
	el, ok := r.wins[id]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return el.EndTransition()
}

// FlushFrames runs every queued next-frame callback and returns how many ran.
func (r *Recorder) FlushFrames() int {
	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

// PendingFrames returns the number of queued next-frame callbacks.
func (r *Recorder) PendingFrames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Window implements Port.
func (r *Recorder) Window(id int) (Element, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.wins[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// DockIcon implements Port.
func (r *Recorder) DockIcon(id int) (Element, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.docks[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Bounds implements Port.
func (r *Recorder) Bounds() (int, int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height, r.bounds
}

// NextFrame implements Port.
func (r *Recorder) NextFrame(fn func()) {
	r.mu.Lock()
	r.frames = append(r.frames, fn)
	r.mu.Unlock()
}

// RecordedElement keeps the last value of every style a controller set.
type RecordedElement struct {
	mu            sync.Mutex
	rect          types.Rect
	transition    Transition
	transform     Transform
	opacity       float64
	pointerEvents bool
	pending       func()
	transitions   int
}

func newRecordedElement(rect types.Rect) *RecordedElement {
	return &RecordedElement{
		rect:          rect,
		transform:     Identity,
		opacity:       1,
		pointerEvents: true,
	}
}

// Measure implements Element.
func (e *RecordedElement) Measure() (types.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect, true
}

// SetRect changes what Measure reports.
func (e *RecordedElement) SetRect(rect types.Rect) {
	e.mu.Lock()
	e.rect = rect
	e.mu.Unlock()
}

// SetTransition implements Element.
func (e *RecordedElement) SetTransition(t Transition) {
	e.mu.Lock()
	e.transition = t
	e.transitions++
	e.mu.Unlock()
}

// SetTransform implements Element.
func (e *RecordedElement) SetTransform(t Transform) {
	e.mu.Lock()
	e.transform = t
	e.mu.Unlock()
}

// SetOpacity implements Element.
func (e *RecordedElement) SetOpacity(o float64) {
	e.mu.Lock()
	e.opacity = o
	e.mu.Unlock()
}

// SetPointerEvents implements Element.
func (e *RecordedElement) SetPointerEvents(enabled bool) {
	e.mu.Lock()
	e.pointerEvents = enabled
	e.mu.Unlock()
}

// OnTransitionEnd implements Element.
func (e *RecordedElement) OnTransitionEnd(fn func()) {
	e.mu.Lock()
	e.pending = fn
	e.mu.Unlock()
}

// EndTransition fires and clears the pending callback.
func (e *RecordedElement) EndTransition() bool {
	e.mu.Lock()
	fn := e.pending
	e.pending = nil
	e.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Transition returns the last transition set.
func (e *RecordedElement) Transition() Transition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transition
}

// TransitionCount returns how many times a transition was set.
func (e *RecordedElement) TransitionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transitions
}

// Transform returns the last transform set.
func (e *RecordedElement) Transform() Transform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transform
}

// Opacity returns the last opacity set.
func (e *RecordedElement) Opacity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opacity
}

// PointerEvents reports whether pointer events are enabled.
func (e *RecordedElement) PointerEvents() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pointerEvents
}

// HasPendingTransitionEnd reports whether a transition-end callback waits.
func (e *RecordedElement) HasPendingTransitionEnd() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}
