package window

import (
	"testing"

	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowRect = types.Rect{Top: 50, Left: 50, Width: 300, Height: 200}
	dockRect   = types.Rect{Top: 1040, Left: 100, Width: 30, Height: 20}
)

func TestMoveAndResize(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	rec.SetBounds(1024, 768)
	ctrl, _ := store.Open("calc", nil)
	el := rec.BindWindow(ctrl.ID(), windowRect)
	el.SetTransition(presentation.GeometryTransition(presentation.MaximizeDuration))

	require.True(t, ctrl.Move(120, 80))
	snap, _ := ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 120, Left: 80, Width: 300, Height: 200}, snap.Geometry)
	assert.True(t, el.Transition().IsNone(), "drag must not animate")

	require.True(t, ctrl.Resize(500, 300, 10, 20))
	snap, _ = ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 10, Left: 20, Width: 500, Height: 300}, snap.Geometry)

	// Oversized resizes clamp and pin
	require.True(t, ctrl.Resize(4000, 300, 10, 20))
	snap, _ = ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 10, Left: 0, Width: 1024, Height: 300}, snap.Geometry)

	assert.False(t, ctrl.Resize(0, 300, 0, 0))
}

func TestMoveWithoutElement(t *testing.T) {
	store, _ := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)

	assert.True(t, ctrl.Move(1, 2))
	snap, _ := ctrl.Snapshot()
	assert.Equal(t, 1, snap.Geometry.Top)
	assert.Equal(t, 2, snap.Geometry.Left)
}

func TestToggleMaximizeRoundTrip(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	rec.SetBounds(1024, 768)

	ctrl, _ := store.Open("calc", nil)
	ctrl.Move(33, 44)
	before, _ := ctrl.Snapshot()

	require.True(t, ctrl.ToggleMaximize())
	maxed, _ := ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 0, Left: 0, Width: 1024, Height: 768}, maxed.Geometry)
	assert.True(t, maxed.Maximized)
	require.NotNil(t, maxed.Saved)
	assert.Equal(t, before.Geometry, *maxed.Saved)

	require.True(t, ctrl.ToggleMaximize())
	after, _ := ctrl.Snapshot()
	assert.Equal(t, before.Geometry, after.Geometry)
	assert.False(t, ctrl.IsMaximized())
}

func TestToggleMaximizeActivates(t *testing.T) {
	store, _ := newTestStore(t, calcApps())
	first, _ := store.Open("calc", nil)
	second, _ := store.Open("calc", nil)
	require.True(t, second.IsActive())

	first.ToggleMaximize()
	assert.True(t, first.IsActive())
	assert.False(t, second.IsActive())

	second.Activate()
	first.ToggleMaximize()
	assert.True(t, first.IsActive())
}

func TestToggleMaximizeFallbackRestore(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	rec.SetBounds(1024, 768)
	ctrl, _ := store.Open("calc", nil)

	// A window resized to exactly the layout area has nothing saved
	ctrl.Resize(1024, 768, 0, 0)
	require.True(t, ctrl.IsMaximized())
	snap, _ := ctrl.Snapshot()
	require.Nil(t, snap.Saved)

	ctrl.ToggleMaximize()
	snap, _ = ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 0, Left: 0, Width: 800, Height: 600}, snap.Geometry)
}

func TestMaximizeFollowsMeasuredBounds(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	rec.SetBounds(1024, 768)
	ctrl, _ := store.Open("calc", nil)

	ctrl.ToggleMaximize()
	assert.True(t, ctrl.IsMaximized())

	// After the layout grows the window is no longer maximized
	rec.SetBounds(1280, 800)
	assert.False(t, ctrl.IsMaximized())

	ctrl.ToggleMaximize()
	snap, _ := ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Width: 1280, Height: 800}, snap.Geometry)
}

func TestToggleMaximizeRestoreFitsShrunkLayout(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	width, height := 1500, 900
	ctrl, err := store.Open("calc", &types.OpenWindowRequest{Width: &width, Height: &height})
	require.NoError(t, err)

	// Maximized against the fallback area, then a smaller view attaches
	require.True(t, ctrl.ToggleMaximize())
	rec.SetBounds(1024, 768)

	for i := 0; i < 2; i++ {
		require.True(t, ctrl.ToggleMaximize())
		snap, _ := ctrl.Snapshot()
		assert.LessOrEqual(t, snap.Geometry.Width, 1024)
		assert.LessOrEqual(t, snap.Geometry.Height, 768)
	}

	// The saved geometry clamps to the whole area, so the restore size is used
	snap, _ := ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 0, Left: 0, Width: 800, Height: 600}, snap.Geometry)
	assert.False(t, snap.Maximized)
}

func TestToggleMaximizeRestoreClampsSavedGeometry(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	width, height := 1500, 500
	top, left := 40, 60
	ctrl, err := store.Open("calc", &types.OpenWindowRequest{Width: &width, Height: &height, Top: &top, Left: &left})
	require.NoError(t, err)

	require.True(t, ctrl.ToggleMaximize())
	rec.SetBounds(1024, 768)
	require.Equal(t, 1, store.Relayout())
	require.True(t, ctrl.IsMaximized())

	ctrl.ToggleMaximize()
	snap, _ := ctrl.Snapshot()
	assert.Equal(t, types.Geometry{Top: 40, Left: 0, Width: 1024, Height: 500}, snap.Geometry)
}

func TestToggleMaximizeAnimatesBoundElement(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	el := rec.BindWindow(ctrl.ID(), windowRect)

	ctrl.ToggleMaximize()

	assert.Equal(t, presentation.GeometryTransition(presentation.MaximizeDuration), el.Transition())
}

func TestToggleMinimizeRequiresAnchors(t *testing.T) {
	tests := []struct {
		name   string
		window bool
		dock   bool
	}{
		{"no elements", false, false},
		{"window only", true, false},
		{"dock only", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, rec := newTestStore(t, calcApps())
			ctrl, _ := store.Open("calc", nil)

			var el *presentation.RecordedElement
			if tt.window {
				el = rec.BindWindow(ctrl.ID(), windowRect)
			}
			if tt.dock {
				rec.BindDockIcon(ctrl.ID(), dockRect)
			}

			before, _ := ctrl.Snapshot()
			assert.False(t, ctrl.ToggleMinimize())
			after, _ := ctrl.Snapshot()

			assert.Equal(t, before, after)
			assert.False(t, ctrl.IsMinimized())
			if el != nil {
				assert.Equal(t, 1.0, el.Opacity())
				assert.False(t, el.HasPendingTransitionEnd())
			}
		})
	}
}

func TestToggleMinimizeAndRestore(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	other, _ := store.Open("notes", nil)
	el := rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)

	require.True(t, ctrl.ToggleMinimize())

	// Styles apply immediately, the flag waits for the animation
	assert.Equal(t, presentation.FadeTransition(presentation.MinimizeDuration), el.Transition())
	assert.Equal(t, presentation.FitTransform(windowRect, dockRect), el.Transform())
	assert.Equal(t, 0.0, el.Opacity())
	assert.False(t, el.PointerEvents())
	assert.False(t, ctrl.IsMinimized())

	require.True(t, rec.EndTransition(ctrl.ID()))
	assert.True(t, ctrl.IsMinimized())
	snap, _ := ctrl.Snapshot()
	assert.True(t, snap.Minimized)

	// Restoring clears the flag at once and resets styles on the next frame
	other.Activate()
	require.True(t, ctrl.ToggleMinimize())
	assert.False(t, ctrl.IsMinimized())
	assert.True(t, ctrl.IsActive())
	assert.Equal(t, 0.0, el.Opacity())

	require.Equal(t, 1, rec.FlushFrames())
	assert.Equal(t, presentation.Identity, el.Transform())
	assert.Equal(t, 1.0, el.Opacity())
	assert.True(t, el.PointerEvents())
}

func TestToggleMinimizeDuringAnimationRestores(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	el := rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)

	require.True(t, ctrl.ToggleMinimize())
	require.True(t, ctrl.ToggleMinimize())

	// The superseded transition end must not minimize the window
	rec.EndTransition(ctrl.ID())
	assert.False(t, ctrl.IsMinimized())

	rec.FlushFrames()
	assert.Equal(t, 1.0, el.Opacity())
}

func TestMinimizeCallbacksAfterClose(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	el := rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)

	require.True(t, ctrl.ToggleMinimize())
	ctrl.Close()

	assert.NotPanics(t, func() {
		el.EndTransition()
	})
	assert.Empty(t, store.All())
	assert.False(t, ctrl.IsMinimized())

	// Restore frame for a window closed before the frame
	reopened, _ := store.Open("calc", nil)
	el2 := rec.BindWindow(reopened.ID(), windowRect)
	rec.BindDockIcon(reopened.ID(), dockRect)
	reopened.ToggleMinimize()
	el2.EndTransition()
	reopened.ToggleMinimize()
	reopened.Close()
	assert.NotPanics(t, func() { rec.FlushFrames() })
	assert.Equal(t, 0.0, el2.Opacity())
}

func TestRestoreWithoutElement(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)

	ctrl.ToggleMinimize()
	rec.EndTransition(ctrl.ID())
	require.True(t, ctrl.IsMinimized())

	// The renderer dropped the element; restore still clears state
	rec.UnbindWindow(ctrl.ID())
	rec.UnbindDockIcon(ctrl.ID())
	require.True(t, ctrl.ToggleMinimize())
	assert.False(t, ctrl.IsMinimized())
	assert.NotPanics(t, func() { rec.FlushFrames() })
}

func TestClickDockIcon(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	other, _ := store.Open("notes", nil)

	// Plain activation
	require.True(t, ctrl.ClickDockIcon())
	assert.True(t, ctrl.IsActive())
	assert.False(t, other.IsActive())

	rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)
	ctrl.ToggleMinimize()
	rec.EndTransition(ctrl.ID())
	other.Activate()
	require.True(t, ctrl.IsMinimized())

	// Restore on click
	require.True(t, ctrl.ClickDockIcon())
	assert.False(t, ctrl.IsMinimized())
	assert.True(t, ctrl.IsActive())
}

func TestShowOrCreateRestoresMinimized(t *testing.T) {
	store, rec := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	_, _ = store.Open("notes", nil)
	rec.BindWindow(ctrl.ID(), windowRect)
	rec.BindDockIcon(ctrl.ID(), dockRect)

	ctrl.ToggleMinimize()
	rec.EndTransition(ctrl.ID())

	shown, err := store.ShowOrCreate("calc")
	require.NoError(t, err)
	assert.Equal(t, ctrl.ID(), shown.ID())
	assert.False(t, ctrl.IsMinimized())
	assert.True(t, ctrl.IsActive())
}

func TestControllerAfterClose(t *testing.T) {
	store, _ := newTestStore(t, calcApps())
	ctrl, _ := store.Open("calc", nil)
	ctrl.Close()

	assert.False(t, ctrl.Move(1, 1))
	assert.False(t, ctrl.Resize(10, 10, 0, 0))
	assert.False(t, ctrl.ToggleMaximize())
	assert.False(t, ctrl.ToggleMinimize())
	assert.False(t, ctrl.ClickDockIcon())
	assert.False(t, ctrl.Activate())
	assert.False(t, ctrl.IsActive())
	assert.False(t, ctrl.IsMaximized())

	_, err := ctrl.Snapshot()
	assert.ErrorIs(t, err, types.ErrUnknownWindow)

	_, err = store.Controller(ctrl.ID())
	assert.ErrorIs(t, err, types.ErrUnknownWindow)
}
