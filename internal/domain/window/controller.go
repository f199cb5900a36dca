package window

import (
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Controller manipulates one window. It holds only the window id, so a
// controller outliving its window turns every mutation into a no-op.
type Controller struct {
	store *Store
	id    int
}

// ID returns the window id
func (c *Controller) ID() int {
	return c.id
}

// Snapshot returns the current state of the window
func (c *Controller) Snapshot() (types.WindowSnapshot, error) {
	return c.store.Get(c.id)
}

// IsMaximized reports whether the window covers the layout area
func (c *Controller) IsMaximized() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	return ok && s.oracle.IsMaximized(rec.geometry)
}

// IsActive reports whether the window holds the active z-order
func (c *Controller) IsActive() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	return ok && rec.zIndex == types.ZIndexActive
}

// IsMinimized reports whether the window finished minimizing
func (c *Controller) IsMinimized() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	return ok && rec.minimized
}

// Activate brings the window to the front
func (c *Controller) Activate() bool {
	return c.store.Activate(c.id)
}

// Move repositions the window without animation
func (c *Controller) Move(top, left int) bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	if !ok {
		return false
	}

	if el, ok := s.port.Window(c.id); ok {
		el.SetTransition(presentation.NoTransition)
	}
	rec.geometry.Top = top
	rec.geometry.Left = left

	s.changedLocked("move")
	return true
}

// Resize sets size and position without animation. The size is clamped
// to the layout area.
func (c *Controller) Resize(width, height, top, left int) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	if !ok {
		return false
	}

	if el, ok := s.port.Window(c.id); ok {
		el.SetTransition(presentation.NoTransition)
	}
	rec.geometry = s.oracle.Clamp(types.Geometry{Top: top, Left: left, Width: width, Height: height})

	s.changedLocked("resize")
	return true
}

// ToggleMaximize maximizes the window, or restores the geometry saved
// before maximizing, clamped to the current layout area. Either way the
// window becomes active.
func (c *Controller) ToggleMaximize() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	if !ok {
		return false
	}

	if el, ok := s.port.Window(c.id); ok {
		el.SetTransition(presentation.GeometryTransition(presentation.MaximizeDuration))
	}

	op := "maximize"
	if s.oracle.IsMaximized(rec.geometry) {
		op = "restore"
		restored := s.oracle.Clamp(types.Geometry{Width: RestoreWidth, Height: RestoreHeight})
		// Saved geometry from a larger layout may clamp back to maximized
		if rec.saved != nil {
			if g := s.oracle.Clamp(*rec.saved); !s.oracle.IsMaximized(g) {
				restored = g
			}
		}
		rec.geometry = restored
	} else {
		saved := rec.geometry
		rec.saved = &saved
		rec.geometry = s.oracle.Maximized()
	}

	s.activateLocked(c.id)
	s.changedLocked(op)
	return true
}

// ToggleMinimize animates the window into its dock icon, or restores it.
// Minimizing needs both the window element and its dock icon; without
// them the call does nothing. A toggle during the minimize animation
// restores.
func (c *Controller) ToggleMinimize() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	if !ok {
		return false
	}

	if rec.minimized || rec.minimizing {
		s.restoreLocked(rec)
		s.changedLocked("restore")
		return true
	}

	if !s.minimizeLocked(rec) {
		return false
	}
	s.changedLocked("minimize")
	return true
}

// ClickDockIcon restores a minimized window and activates any other
func (c *Controller) ClickDockIcon() bool {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[c.id]
	if !ok {
		return false
	}

	if rec.minimized || rec.minimizing {
		s.restoreLocked(rec)
		s.changedLocked("restore")
		return true
	}

	s.activateLocked(c.id)
	s.changedLocked("activate")
	return true
}

// Close closes the window and its descendants
func (c *Controller) Close() bool {
	return c.store.Close(c.id)
}

// CreateChildWindow opens a window for packageID owned by this one.
// Closing this window closes the child.
func (c *Controller) CreateChildWindow(packageID string) (*Controller, error) {
	s := c.store
	desc, err := s.apps.Lookup(packageID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.records[c.id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownWindow, c.id)
	}

	child := s.openLocked(desc, nil)
	child.parentID = parent.id
	parent.children = append(parent.children, child.id)

	s.changedLocked("open_child")
	return &Controller{store: s, id: child.id}, nil
}

// minimizeLocked starts the minimize animation (must hold lock)
func (s *Store) minimizeLocked(rec *record) bool {
	win, ok := s.port.Window(rec.id)
	if !ok {
		return false
	}
	dock, ok := s.port.DockIcon(rec.id)
	if !ok {
		return false
	}
	from, ok := win.Measure()
	if !ok {
		return false
	}
	to, ok := dock.Measure()
	if !ok {
		return false
	}

	rec.seq++
	rec.minimizing = true
	id, seq := rec.id, rec.seq

	win.SetTransition(presentation.FadeTransition(presentation.MinimizeDuration))
	win.SetTransform(presentation.FitTransform(from, to))
	win.SetOpacity(0)
	win.SetPointerEvents(false)
	win.OnTransitionEnd(func() { s.finishMinimize(id, seq) })

	s.logger.Debug("window minimizing", logging.WindowID(id))
	return true
}

// finishMinimize flips the flag once the animation ended. Late or
// superseded notifications are ignored.
func (s *Store) finishMinimize(id int, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || !rec.minimizing || rec.seq != seq {
		return
	}
	rec.minimizing = false
	rec.minimized = true
	s.changedLocked("minimized")
}

// restoreLocked clears the minimized state, activates the window and
// resets its element on the next frame (must hold lock)
func (s *Store) restoreLocked(rec *record) {
	rec.seq++
	rec.minimizing = false
	rec.minimized = false
	s.activateLocked(rec.id)

	id, seq := rec.id, rec.seq
	s.port.NextFrame(func() { s.finishRestore(id, seq) })
}

// finishRestore returns the element to identity if nothing happened to
// the window in between.
func (s *Store) finishRestore(id int, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.seq != seq {
		return
	}
	el, ok := s.port.Window(id)
	if !ok {
		return
	}
	el.SetTransition(presentation.FadeTransition(presentation.MinimizeDuration))
	el.SetTransform(presentation.Identity)
	el.SetOpacity(1)
	el.SetPointerEvents(true)
}
