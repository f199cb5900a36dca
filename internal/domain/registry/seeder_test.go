package registry

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// pngHeader is enough for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x10\x00\x00\x00\x10\x08\x06\x00\x00\x00")

func TestSeedApps(t *testing.T) {
	fsys := fstest.MapFS{
		"calc/app.yaml": {Data: []byte(`
package_id: calc
name: Calculator
icon: "🧮"
default_width: 320
default_height: half
`)},
		"notes/app.toml": {Data: []byte(`
package_id = "notes"
name = "Notes"
icon = "icon.png"
default_width = 640
default_maximized = true
`)},
		"notes/icon.png": {Data: pngHeader},
		"dialog.json": {Data: []byte(`{
  "package_id": "dialog",
  "name": "Dialog",
  "default_width": "max",
  "hidden_in_desktop": true,
  "props": {"modal": true}
}`)},
		"broken.yaml":  {Data: []byte("package_id: [unterminated")},
		"README.md":    {Data: []byte("# apps")},
		"invalid.json": {Data: []byte(`{"package_id": "bad id", "name": "Bad"}`)},
	}

	r := NewRegistry()
	result, err := NewSeeder(r, "apps").WithFS(fsys).SeedApps()
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Loaded: 3, Failed: 2}, result)

	calc, err := r.Lookup("calc")
	require.NoError(t, err)
	assert.Equal(t, types.Pixels(320), calc.DefaultWidth)
	assert.Equal(t, types.Half, calc.DefaultHeight)

	notes, err := r.Lookup("notes")
	require.NoError(t, err)
	assert.Equal(t, types.Pixels(640), notes.DefaultWidth)
	assert.True(t, notes.DefaultMaximized)
	assert.True(t, strings.HasPrefix(notes.Icon, "data:image/png;base64,"))

	dialog, err := r.Lookup("dialog")
	require.NoError(t, err)
	assert.Equal(t, types.Max, dialog.DefaultWidth)
	assert.True(t, dialog.HiddenInDesktop)
	assert.Equal(t, true, dialog.Props["modal"])

	// Files are visited in sorted path order
	entries := r.Launcher()
	require.Len(t, entries, 2)
	assert.Equal(t, "calc", entries[0].PackageID)
	assert.Equal(t, "notes", entries[1].PackageID)
}

func TestSeedAppsDuplicateCountsAsFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("package_id: calc\nname: First\n")},
		"b.yaml": {Data: []byte("package_id: calc\nname: Second\n")},
	}

	r := NewRegistry()
	result, err := NewSeeder(r, "apps").WithFS(fsys).SeedApps()
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Loaded: 1, Failed: 1}, result)

	calc, err := r.Lookup("calc")
	require.NoError(t, err)
	assert.Equal(t, "First", calc.Name)
}

func TestSeedAppsMissingDir(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	r := NewRegistry()
	result, err := NewSeeder(r, t.TempDir()+"/does-not-exist").
		WithLogger(zap.New(core)).
		SeedApps()
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, result)
	assert.Equal(t, 1, logs.FilterMessage("apps directory not found").Len())
}

func TestSeedAppsEmptyDir(t *testing.T) {
	r := NewRegistry()
	result, err := NewSeeder(r, t.TempDir()).SeedApps()
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, result)
}

func TestResolveIcon(t *testing.T) {
	fsys := fstest.MapFS{
		"apps/calc/icon.png":  {Data: pngHeader},
		"apps/calc/notes.txt": {Data: []byte("plain text")},
		"apps/calc/big.png":   {Data: append(append([]byte{}, pngHeader...), make([]byte, MaxIconFileSize)...)},
	}

	tests := []struct {
		name string
		dir  string
		icon string
		want string
	}{
		{"empty", "apps/calc", "", ""},
		{"emoji", "apps/calc", "🧮", "🧮"},
		{"url", "apps/calc", "https://example.com/icon.png", "https://example.com/icon.png"},
		{"data uri", "apps/calc", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"absolute", "apps/calc", "/icons/calc.png", "/icons/calc.png"},
		{"missing file", "apps/calc", "missing.png", "missing.png"},
		{"not an image", "apps/calc", "notes.txt", "notes.txt"},
		{"too large", "apps/calc", "big.png", "big.png"},
		{"escapes root", ".", "../icon.png", "../icon.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIcon(fsys, tt.dir, tt.icon))
		})
	}

	t.Run("relative image", func(t *testing.T) {
		got := ResolveIcon(fsys, "apps/calc", "icon.png")
		assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"), got)

		// Subdirectories resolve relative to the manifest
		got = ResolveIcon(fsys, "apps", "calc/icon.png")
		assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"), got)
	})
}
