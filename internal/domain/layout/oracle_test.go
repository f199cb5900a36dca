package layout

import (
	"testing"

	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

type fixedSource struct {
	w, h int
	ok   bool
}

func (s fixedSource) Bounds() (int, int, bool) { return s.w, s.h, s.ok }

func TestOracleFallback(t *testing.T) {
	o := NewOracle(0, 0)
	assert.Equal(t, 1920, o.MaxWidth())
	assert.Equal(t, 1080, o.MaxHeight())

	o = NewOracle(1280, 720)
	assert.Equal(t, 1280, o.MaxWidth())
	assert.Equal(t, 720, o.MaxHeight())
}

func TestOracleSource(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		wantW  int
		wantH  int
	}{
		{"unbound", nil, 1920, 1080},
		{"measured", fixedSource{1024, 768, true}, 1024, 768},
		{"not measurable", fixedSource{1024, 768, false}, 1920, 1080},
		{"zero width", fixedSource{0, 768, true}, 1920, 768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOracle(1920, 1080)
			if tt.source != nil {
				o.Bind(tt.source)
			}
			w, h := o.Size()
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestOracleBinding(t *testing.T) {
	// A presentation binding is the usual source
	binding := presentation.NewBinding()
	o := NewOracle(1920, 1080)
	o.Bind(binding)
	assert.Equal(t, 1920, o.MaxWidth())

	rec := presentation.NewRecorder()
	rec.SetBounds(800, 600)
	binding.Bind(rec)
	assert.Equal(t, 800, o.MaxWidth())
	assert.Equal(t, 600, o.MaxHeight())

	o.Unbind()
	assert.Equal(t, 1920, o.MaxWidth())
}

func TestClamp(t *testing.T) {
	o := NewOracle(1024, 768)

	tests := []struct {
		name string
		in   types.Geometry
		want types.Geometry
	}{
		{
			name: "fits",
			in:   types.Geometry{Top: 50, Left: 50, Width: 300, Height: 200},
			want: types.Geometry{Top: 50, Left: 50, Width: 300, Height: 200},
		},
		{
			name: "too wide pins left",
			in:   types.Geometry{Top: 50, Left: 50, Width: 2000, Height: 200},
			want: types.Geometry{Top: 50, Left: 0, Width: 1024, Height: 200},
		},
		{
			name: "too tall pins top",
			in:   types.Geometry{Top: 50, Left: 50, Width: 300, Height: 900},
			want: types.Geometry{Top: 0, Left: 50, Width: 300, Height: 768},
		},
		{
			name: "exactly max pins both",
			in:   types.Geometry{Top: 10, Left: 10, Width: 1024, Height: 768},
			want: types.Geometry{Top: 0, Left: 0, Width: 1024, Height: 768},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.Clamp(tt.in))
		})
	}
}

func TestIsMaximized(t *testing.T) {
	o := NewOracle(1024, 768)

	assert.Equal(t, types.Geometry{Width: 1024, Height: 768}, o.Maximized())
	assert.True(t, o.IsMaximized(types.Geometry{Width: 1024, Height: 768}))
	assert.False(t, o.IsMaximized(types.Geometry{Top: 1, Width: 1024, Height: 768}))

	// Maximized is relative to the current measurement
	o.Bind(fixedSource{1280, 800, true})
	assert.False(t, o.IsMaximized(types.Geometry{Width: 1024, Height: 768}))
}
