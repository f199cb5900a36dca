package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "apps", "calc", "app.yaml"), `
package_id: calc
name: Calculator
icon: "🧮"
default_width: 300
default_height: 200
on_close: |
  console.log("calculator closed", window.id, window.packageId);
`)
	writeFile(t, filepath.Join(dir, "apps", "settings.toml"), `
package_id = "settings"
name = "Settings"
hidden_in_desktop = true
`)
	writeFile(t, filepath.Join(dir, "options.yaml"), `
wallpaper: dunes.jpg
windowBar: top
`)

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Desktop.AppsDir = filepath.Join(dir, "apps")
	cfg.Desktop.OptionsFile = filepath.Join(dir, "options.yaml")
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, ts
}

func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServerSeedsAppsAndOptions(t *testing.T) {
	srv, ts := newTestServer(t)

	stats := srv.Registry().Stats()
	assert.Equal(t, 2, stats.TotalApps)
	assert.Equal(t, 1, stats.HiddenApps)

	var launcher struct {
		Apps []types.LauncherEntry `json:"apps"`
	}
	getJSON(t, ts.URL+"/api/launcher", &launcher)
	require.Len(t, launcher.Apps, 1)
	assert.Equal(t, "calc", launcher.Apps[0].PackageID)

	var options map[string]interface{}
	getJSON(t, ts.URL+"/api/options", &options)
	assert.Equal(t, "dunes.jpg", options["wallpaper"])
}

func TestServerRunsCloseHooks(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/apps/calc/launch", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, srv.Store().All(), 1)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/windows/1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, srv.Store().All())

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `webdesk_hook_runs_total{status="ok"} 1`)
	assert.Contains(t, string(body), `webdesk_windows_opened_total 1`)
}

func TestServerTracesAndCompresses(t *testing.T) {
	_, ts := newTestServer(t)

	// Large enough to pass the compression threshold
	for i := 0; i < 20; i++ {
		resp, err := http.Post(ts.URL+"/api/apps/calc/open", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/windows", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	transport := &http.Transport{DisableCompression: true}
	resp, err := (&http.Client{Transport: transport}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	var list struct {
		Windows []types.WindowSnapshot `json:"windows"`
	}
	require.NoError(t, json.NewDecoder(gz).Decode(&list))
	assert.Len(t, list.Windows, 20)
}

func TestServerRejectsBadOptionsFile(t *testing.T) {
	cfg := config.Default()
	cfg.Desktop.AppsDir = t.TempDir()
	cfg.Desktop.OptionsFile = filepath.Join(t.TempDir(), "options.ini")

	_, err := NewServer(cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "desktop options"))
}
