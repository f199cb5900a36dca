package ws

import (
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// RemotePort is the presentation port of one connected desktop view.
// Element state comes from inbound messages; element commands go out as
// stream messages. Callbacks run on the connection's read goroutine.
type RemotePort struct {
	send func(types.StreamMessage) bool

	mu        sync.Mutex
	width     int                    // Protected by mu
	height    int                    // Protected by mu
	hasBounds bool                   // Protected by mu
	windows   map[int]*RemoteElement // Protected by mu
	docks     map[int]*RemoteElement // Protected by mu
	frames    []func()               // Protected by mu
	closed    bool                   // Protected by mu
}

// NewRemotePort creates a port that emits commands through send.
// send must not block.
func NewRemotePort(send func(types.StreamMessage) bool) *RemotePort {
	return &RemotePort{
		send:    send,
		windows: make(map[int]*RemoteElement),
		docks:   make(map[int]*RemoteElement),
	}
}

// Window returns the bound window element
func (p *RemotePort) Window(id int) (presentation.Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.windows[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// DockIcon returns the bound dock icon element
func (p *RemotePort) DockIcon(id int) (presentation.Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.docks[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Bounds returns the last reported layout area size
func (p *RemotePort) Bounds() (int, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height, p.hasBounds
}

// NextFrame queues fn until the view reports its next frame
func (p *RemotePort) NextFrame(fn func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		go fn()
		return
	}
	p.frames = append(p.frames, fn)
	first := len(p.frames) == 1
	p.mu.Unlock()

	if first {
		p.send(types.StreamMessage{Type: MsgRequestFrame})
	}
}

// SetBounds records the layout area size. Non-positive sizes clear it.
func (p *RemotePort) SetBounds(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.width, p.height = width, height
	p.hasBounds = width > 0 && height > 0
}

// BindElement records or updates the rect of an element
func (p *RemotePort) BindElement(target string, id int, rect types.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elements := p.elementsLocked(target)
	if el, ok := elements[id]; ok {
		el.rect = rect
		return
	}
	elements[id] = &RemoteElement{port: p, target: target, id: id, rect: rect}
}

// UnbindElement forgets an element. A pending transition-end callback is
// dropped with it.
func (p *RemotePort) UnbindElement(target string, id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.elementsLocked(target), id)
}

// EndTransition runs the pending transition-end callback of an element.
// It reports whether one ran.
func (p *RemotePort) EndTransition(target string, id int) bool {
	p.mu.Lock()
	el, ok := p.elementsLocked(target)[id]
	var fn func()
	if ok {
		fn, el.onEnd = el.onEnd, nil
	}
	p.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Frame runs every callback queued by NextFrame. It returns how many ran.
func (p *RemotePort) Frame() int {
	p.mu.Lock()
	frames := p.frames
	p.frames = nil
	p.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

// Close detaches the port and runs every pending callback, as if the
// view had finished its animations.
func (p *RemotePort) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true

	pending := p.frames
	p.frames = nil
	for _, elements := range []map[int]*RemoteElement{p.windows, p.docks} {
		for _, el := range elements {
			if el.onEnd != nil {
				pending = append(pending, el.onEnd)
				el.onEnd = nil
			}
		}
	}
	p.windows = make(map[int]*RemoteElement)
	p.docks = make(map[int]*RemoteElement)
	p.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// elementsLocked picks the element map of target (must hold lock)
func (p *RemotePort) elementsLocked(target string) map[int]*RemoteElement {
	if target == types.TargetDock {
		return p.docks
	}
	return p.windows
}

// RemoteElement mirrors one element of the desktop view
type RemoteElement struct {
	port   *RemotePort
	target string
	id     int
	rect   types.Rect // Protected by port.mu
	onEnd  func()     // Protected by port.mu
}

// Measure returns the last reported rect
func (e *RemoteElement) Measure() (types.Rect, bool) {
	e.port.mu.Lock()
	defer e.port.mu.Unlock()
	return e.rect, true
}

// SetTransition sends the CSS transition of the element
func (e *RemoteElement) SetTransition(t presentation.Transition) {
	e.command(MsgTransition, t.String())
}

// SetTransform sends the CSS transform of the element
func (e *RemoteElement) SetTransform(t presentation.Transform) {
	e.command(MsgTransform, t.String())
}

// SetOpacity sends the opacity of the element
func (e *RemoteElement) SetOpacity(o float64) {
	e.command(MsgOpacity, o)
}

// SetPointerEvents enables or disables pointer events on the element
func (e *RemoteElement) SetPointerEvents(enabled bool) {
	e.command(MsgPointerEvents, enabled)
}

// OnTransitionEnd replaces the pending transition-end callback
func (e *RemoteElement) OnTransitionEnd(fn func()) {
	e.port.mu.Lock()
	defer e.port.mu.Unlock()
	e.onEnd = fn
}

func (e *RemoteElement) command(msgType string, value interface{}) {
	e.port.send(types.StreamMessage{
		Type:     msgType,
		WindowID: e.id,
		Target:   e.target,
		Payload:  value,
	})
}
