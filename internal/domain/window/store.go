package window

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/domain/layout"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"go.uber.org/zap"
)

// Geometry defaults.
const (
	DefaultWidth       = 800
	DefaultHeight      = 400
	RestoreWidth       = 800
	RestoreHeight      = 600
	CascadeOrigin      = 50
	DefaultCascadeStep = 5
)

// AppLookup resolves app descriptors
type AppLookup interface {
	Lookup(packageID string) (*types.AppDescriptor, error)
}

// record is the mutable state of one open window. Protected by Store.mu.
type record struct {
	id        int
	packageID string
	title     string
	icon      string
	geometry  types.Geometry
	saved     *types.Geometry
	zIndex    int
	minimized bool

	// minimizing is set while the minimize animation runs; seq invalidates
	// callbacks scheduled by an earlier toggle.
	minimizing bool
	seq        uint64

	parentID int
	children []int
	onClose  types.CloseHook
}

// Store owns every open window record
type Store struct {
	mu          sync.Mutex
	records     map[int]*record // Protected by mu
	opened      int             // Protected by mu
	activeID    int             // Protected by mu
	area        types.Geometry  // Protected by mu, maximized rect at the last relayout
	apps        AppLookup
	oracle      *layout.Oracle
	port        presentation.Port
	cascadeStep int
	logger      *zap.Logger
	publisher   types.Publisher
	metrics     *monitoring.Metrics
}

// NewStore creates a new window store
func NewStore(apps AppLookup, oracle *layout.Oracle, port presentation.Port) *Store {
	if port == nil {
		port = presentation.Detached{}
	}
	return &Store{
		records:     make(map[int]*record),
		area:        oracle.Maximized(),
		apps:        apps,
		oracle:      oracle,
		port:        port,
		cascadeStep: DefaultCascadeStep,
		logger:      zap.NewNop(),
		publisher:   types.NopPublisher{},
	}
}

// WithLogger adds logging to the store
func (s *Store) WithLogger(logger *zap.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithPublisher sends window list changes to desktop views
func (s *Store) WithPublisher(publisher types.Publisher) *Store {
	if publisher != nil {
		s.publisher = publisher
	}
	return s
}

// WithMetrics adds metrics tracking to the store
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// WithCascadeStep sets the per-open position offset
func (s *Store) WithCascadeStep(step int) *Store {
	if step >= 0 {
		s.cascadeStep = step
	}
	return s
}

// Open creates a window for packageID and activates it
func (s *Store) Open(packageID string, opts *types.OpenWindowRequest) (*Controller, error) {
	desc, err := s.apps.Lookup(packageID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.openLocked(desc, opts)
	s.changedLocked("open")
	return &Controller{store: s, id: rec.id}, nil
}

// openLocked creates and activates a record (must hold lock)
func (s *Store) openLocked(desc *types.AppDescriptor, opts *types.OpenWindowRequest) *record {
	maxW, maxH := s.oracle.Size()

	offset := CascadeOrigin + s.cascadeStep*s.opened
	g := types.Geometry{
		Top:    offset,
		Left:   offset,
		Width:  desc.DefaultWidth.Resolve(maxW, DefaultWidth),
		Height: desc.DefaultHeight.Resolve(maxH, DefaultHeight),
	}
	maximized := desc.DefaultMaximized

	if opts != nil {
		if opts.Width != nil && *opts.Width > 0 {
			g.Width = *opts.Width
		}
		if opts.Height != nil && *opts.Height > 0 {
			g.Height = *opts.Height
		}
		if opts.Top != nil {
			g.Top = *opts.Top
		}
		if opts.Left != nil {
			g.Left = *opts.Left
		}
		if opts.Maximized != nil {
			maximized = *opts.Maximized
		}
	}

	var saved *types.Geometry
	if maximized {
		g = s.oracle.Maximized()
	} else {
		g = s.oracle.Clamp(g)
	}
	if s.oracle.IsMaximized(g) {
		// Give the first restore somewhere to go
		saved = &types.Geometry{Top: offset, Left: offset, Width: maxW / 2, Height: maxH / 2}
	}

	s.opened++
	rec := &record{
		id:        s.opened,
		packageID: desc.PackageID,
		title:     desc.Name,
		icon:      desc.Icon,
		geometry:  g,
		saved:     saved,
		onClose:   desc.OnClose,
	}
	s.records[rec.id] = rec
	s.activateLocked(rec.id)

	s.metrics.IncWindowsOpened()
	s.metrics.SetWindowsOpen(len(s.records))
	s.logger.Info("window opened",
		logging.WindowID(rec.id),
		logging.PackageID(rec.packageID),
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
	)
	return rec
}

// Close closes a window and all of its descendants. It reports whether
// the window existed.
func (s *Store) Close(id int) bool {
	s.mu.Lock()

	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	// Descendants first, collected before any removal
	var order []*record
	var collect func(r *record)
	collect = func(r *record) {
		for _, childID := range r.children {
			if child, ok := s.records[childID]; ok {
				collect(child)
			}
		}
		order = append(order, r)
	}
	collect(rec)

	var hooks []func()
	closedActive := false
	for _, r := range order {
		delete(s.records, r.id)
		if r.id == s.activeID {
			closedActive = true
		}
		if r.onClose != nil {
			hook, info := r.onClose, types.WindowInfo{ID: r.id, PackageID: r.packageID}
			hooks = append(hooks, func() { hook(info) })
		}
	}

	if parent, ok := s.records[rec.parentID]; ok {
		parent.children = removeID(parent.children, id)
	}

	if closedActive {
		s.activeID = 0
		if next := s.highestIDLocked(); next != 0 {
			s.activateLocked(next)
		}
	}

	s.metrics.SetWindowsOpen(len(s.records))
	s.logger.Info("window closed",
		logging.WindowID(id),
		zap.Int("closed", len(order)),
	)
	s.changedLocked("close")
	s.mu.Unlock()

	// Hooks may re-enter the store
	for _, hook := range hooks {
		hook()
	}
	return true
}

// Activate gives a window the active z-order. It reports whether the
// window existed.
func (s *Store) Activate(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	s.activateLocked(id)
	s.changedLocked("activate")
	return true
}

// activateLocked sets z-order sentinels (must hold lock)
func (s *Store) activateLocked(id int) {
	for _, r := range s.records {
		if r.id == id {
			r.zIndex = types.ZIndexActive
		} else {
			r.zIndex = types.ZIndexInactive
		}
	}
	s.activeID = id
}

// ShowOrCreate cycles activation through the open windows of packageID
// in ascending id order, or opens one when there are none. A minimized
// window is restored when it comes up.
func (s *Store) ShowOrCreate(packageID string) (*Controller, error) {
	desc, err := s.apps.Lookup(packageID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int
	for _, r := range s.records {
		if r.packageID == packageID {
			ids = append(ids, r.id)
		}
	}

	if len(ids) == 0 {
		rec := s.openLocked(desc, nil)
		s.changedLocked("open")
		return &Controller{store: s, id: rec.id}, nil
	}

	sort.Ints(ids)
	next := ids[0]
	for i, id := range ids {
		if id == s.activeID {
			next = ids[(i+1)%len(ids)]
			break
		}
	}

	rec := s.records[next]
	if rec.minimized || rec.minimizing {
		s.restoreLocked(rec)
	} else {
		s.activateLocked(next)
	}
	s.changedLocked("show")
	return &Controller{store: s, id: next}, nil
}

// Get returns a snapshot of one window
func (s *Store) Get(id int) (types.WindowSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return types.WindowSnapshot{}, fmt.Errorf("%w: %d", types.ErrUnknownWindow, id)
	}
	return s.snapshotLocked(rec), nil
}

// Controller returns the controller of an open window
func (s *Store) Controller(id int) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownWindow, id)
	}
	return &Controller{store: s, id: id}, nil
}

// All returns snapshots of every open window in ascending id order.
// Stacking must be read from ZIndex.
func (s *Store) All() []types.WindowSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

func (s *Store) allLocked() []types.WindowSnapshot {
	ids := make([]int, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]types.WindowSnapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.snapshotLocked(s.records[id]))
	}
	return out
}

// Relayout fits every window into the current layout area and returns
// how many changed. Windows that covered the previous area are resized to
// cover the new one.
func (s *Store) Relayout() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	maximized := s.oracle.Maximized()
	prev := s.area
	s.area = maximized

	changed := 0
	for _, rec := range s.records {
		next := s.oracle.Clamp(rec.geometry)
		if rec.geometry == prev {
			next = maximized
		}
		if next != rec.geometry {
			rec.geometry = next
			changed++
		}
	}
	if changed > 0 {
		s.logger.Debug("windows relaid out",
			zap.Int("changed", changed),
			zap.Int("width", maximized.Width),
			zap.Int("height", maximized.Height),
		)
		s.changedLocked("relayout")
	}
	return changed
}

// View calls fn with the window list while holding the store lock, so no
// change is published between the snapshot and fn returning. fn must not
// call back into the store.
func (s *Store) View(fn func([]types.WindowSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.allLocked())
}

// ActiveID returns the active window id, or 0 when none is open
func (s *Store) ActiveID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Stats returns store statistics
func (s *Store) Stats() types.WindowStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := types.WindowStats{
		OpenWindows: len(s.records),
		OpenedTotal: s.opened,
	}
	for _, r := range s.records {
		if r.minimized {
			stats.MinimizedWindows++
		}
		if s.oracle.IsMaximized(r.geometry) {
			stats.MaximizedWindows++
		}
	}
	if s.activeID != 0 {
		active := s.activeID
		stats.ActiveWindowID = &active
	}
	return stats
}

// snapshotLocked copies a record (must hold lock)
func (s *Store) snapshotLocked(r *record) types.WindowSnapshot {
	snap := types.WindowSnapshot{
		ID:        r.id,
		PackageID: r.packageID,
		Title:     r.title,
		Icon:      r.icon,
		Geometry:  r.geometry,
		ZIndex:    r.zIndex,
		Minimized: r.minimized,
		Maximized: s.oracle.IsMaximized(r.geometry),
		ParentID:  r.parentID,
	}
	if r.saved != nil {
		saved := *r.saved
		snap.Saved = &saved
	}
	if len(r.children) > 0 {
		snap.Children = append([]int(nil), r.children...)
	}
	return snap
}

// highestIDLocked returns the newest open window id, or 0 (must hold lock)
func (s *Store) highestIDLocked() int {
	highest := 0
	for id := range s.records {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// changedLocked records an operation and publishes the window list (must hold lock)
func (s *Store) changedLocked(op string) {
	s.metrics.RecordWindowOp(op)
	s.publisher.Publish(types.Event{Type: types.EventWindows, Payload: s.allLocked()})
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
