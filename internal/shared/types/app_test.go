package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    Dimension
		wantErr bool
	}{
		{"nil is unset", nil, Dimension{}, false},
		{"int", 300, Pixels(300), false},
		{"int64", int64(200), Pixels(200), false},
		{"uint64", uint64(640), Pixels(640), false},
		{"whole float", float64(480), Pixels(480), false},
		{"json number", json.Number("720"), Pixels(720), false},
		{"numeric string", " 800 ", Pixels(800), false},
		{"half", "half", Half, false},
		{"max upper", "MAX", Max, false},
		{"empty string", "", Dimension{}, false},
		{"fractional", 10.5, Dimension{}, true},
		{"zero", 0, Dimension{}, true},
		{"negative", -5, Dimension{}, true},
		{"word", "wide", Dimension{}, true},
		{"bool", true, Dimension{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDimensionResolve(t *testing.T) {
	assert.Equal(t, 300, Pixels(300).Resolve(1024, 800))
	assert.Equal(t, 512, Half.Resolve(1024, 800))
	assert.Equal(t, 1024, Max.Resolve(1024, 800))
	assert.Equal(t, 800, Dimension{}.Resolve(1024, 800))
}

func TestDimensionJSON(t *testing.T) {
	desc := AppDescriptor{
		PackageID:     "calc",
		DefaultWidth:  Pixels(300),
		DefaultHeight: Half,
	}

	data, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"default_width":300`)
	assert.Contains(t, string(data), `"default_height":"half"`)

	var decoded AppDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Pixels(300), decoded.DefaultWidth)
	assert.Equal(t, Half, decoded.DefaultHeight)
	assert.False(t, decoded.DefaultMaximized)
}

func TestToLauncherEntry(t *testing.T) {
	desc := &AppDescriptor{PackageID: "calc", Name: "Calculator", Icon: "🧮", DefaultMaximized: true}

	assert.Equal(t, LauncherEntry{PackageID: "calc", Name: "Calculator", Icon: "🧮"}, desc.ToLauncherEntry())
}

func TestWindowSnapshotActive(t *testing.T) {
	assert.True(t, WindowSnapshot{ZIndex: ZIndexActive}.Active())
	assert.False(t, WindowSnapshot{ZIndex: ZIndexInactive}.Active())
}
