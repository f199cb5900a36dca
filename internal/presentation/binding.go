package presentation

import "sync"

// Binding is a Port that forwards to whichever renderer is currently
// attached, or to Detached when none is.
type Binding struct {
	mu      sync.RWMutex
	current Port
}

// NewBinding creates a detached binding.
func NewBinding() *Binding {
	return &Binding{}
}

// Bind attaches p, replacing any previous port.
func (b *Binding) Bind(p Port) {
	b.mu.Lock()
	b.current = p
	b.mu.Unlock()
}

// Unbind detaches p if it is still the current port. It reports whether
// p was detached.
func (b *Binding) Unbind(p Port) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != p {
		return false
	}
	b.current = nil
	return true
}

// Current returns the attached port, or Detached.
func (b *Binding) Current() Port {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return Detached{}
	}
	return b.current
}

// Bound reports whether a renderer is attached.
func (b *Binding) Bound() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current != nil
}

// Window returns the current port's element for window id.
func (b *Binding) Window(id int) (Element, bool) {
	return b.Current().Window(id)
}

// DockIcon returns the current port's dock icon element for window id.
func (b *Binding) DockIcon(id int) (Element, bool) {
	return b.Current().DockIcon(id)
}

// Bounds returns the current port's layout area size.
func (b *Binding) Bounds() (int, int, bool) {
	return b.Current().Bounds()
}

// NextFrame schedules fn on the current port. A detached binding runs it
// on its own goroutine.
func (b *Binding) NextFrame(fn func()) {
	b.Current().NextFrame(fn)
}
