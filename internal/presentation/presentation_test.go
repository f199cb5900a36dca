package presentation

import (
	"testing"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionString(t *testing.T) {
	tests := []struct {
		name string
		in   Transition
		want string
	}{
		{"none", NoTransition, "none"},
		{"zero duration", Transition{Properties: []string{"top"}}, "none"},
		{"maximize", GeometryTransition(MaximizeDuration), "top 0.25s ease, left 0.25s ease, width 0.25s ease, height 0.25s ease"},
		{"minimize", FadeTransition(MinimizeDuration), "transform 0.3s ease, opacity 0.3s ease"},
		{"whole seconds", FadeTransition(time.Second), "transform 1s ease, opacity 1s ease"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestFitTransform(t *testing.T) {
	window := types.Rect{Top: 100, Left: 100, Width: 800, Height: 400}
	icon := types.Rect{Top: 1000, Left: 500, Width: 40, Height: 40}

	got := FitTransform(window, icon)

	assert.InDelta(t, 0.05, got.ScaleX, 1e-9)
	assert.InDelta(t, 0.1, got.ScaleY, 1e-9)
	// centers: window (500, 300), icon (520, 1020)
	assert.InDelta(t, 20, got.TranslateX, 1e-9)
	assert.InDelta(t, 720, got.TranslateY, 1e-9)
	assert.Equal(t, "translate(20px, 720px) scale(0.05, 0.1)", got.String())
}

func TestFitTransformDegenerate(t *testing.T) {
	got := FitTransform(types.Rect{}, types.Rect{Width: 10, Height: 10})

	assert.Equal(t, 1.0, got.ScaleX)
	assert.Equal(t, 1.0, got.ScaleY)
	assert.False(t, got.IsIdentity())
	assert.True(t, Identity.IsIdentity())
}

func TestBinding(t *testing.T) {
	b := NewBinding()

	_, _, ok := b.Bounds()
	assert.False(t, ok)
	assert.False(t, b.Bound())

	first := NewRecorder()
	first.SetBounds(1024, 768)
	b.Bind(first)

	w, h, ok := b.Bounds()
	require.True(t, ok)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	second := NewRecorder()
	b.Bind(second)

	// A stale port cannot unbind its replacement
	assert.False(t, b.Unbind(first))
	assert.True(t, b.Bound())
	assert.True(t, b.Unbind(second))
	assert.False(t, b.Bound())
}

func TestDetachedNextFrameIsAsync(t *testing.T) {
	done := make(chan struct{})
	Detached{}.NextFrame(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("next frame callback never ran")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Window(1)
	assert.False(t, ok)

	el := r.BindWindow(1, types.Rect{Width: 100, Height: 50})
	found, ok := r.Window(1)
	require.True(t, ok)
	assert.Same(t, el, found)

	rect, ok := found.Measure()
	require.True(t, ok)
	assert.Equal(t, 100.0, rect.Width)

	// Defaults match an untouched element
	assert.Equal(t, Identity, el.Transform())
	assert.Equal(t, 1.0, el.Opacity())
	assert.True(t, el.PointerEvents())

	fired := 0
	el.OnTransitionEnd(func() { fired++ })
	el.OnTransitionEnd(func() { fired += 10 })
	assert.True(t, r.EndTransition(1))
	assert.False(t, r.EndTransition(1))
	assert.Equal(t, 10, fired)

	frames := 0
	r.NextFrame(func() { frames++ })
	r.NextFrame(func() { frames++ })
	assert.Equal(t, 2, r.PendingFrames())
	assert.Equal(t, 2, r.FlushFrames())
	assert.Equal(t, 2, frames)

	r.UnbindWindow(1)
	_, ok = r.Window(1)
	assert.False(t, ok)
}
