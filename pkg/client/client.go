package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/webdesk/internal/shared/codec"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// DefaultTimeout bounds a single API call
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the desktop API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("webdesk: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("webdesk: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Health is the detailed health report
type Health struct {
	Status   string              `json:"status"`
	Version  string              `json:"version"`
	Registry types.RegistryStats `json:"registry"`
	Windows  types.WindowStats   `json:"windows"`
}

// Launcher lists the apps shown on the desktop
type Launcher struct {
	Apps  []types.LauncherEntry `json:"apps"`
	Stats types.RegistryStats   `json:"stats"`
}

// WindowList lists every open window
type WindowList struct {
	Windows []types.WindowSnapshot `json:"windows"`
	Stats   types.WindowStats      `json:"stats"`
}

// ActionResult reports a window action. Window is nil when the window
// is gone afterwards.
type ActionResult struct {
	Success  bool                  `json:"success"`
	WindowID int                   `json:"window_id"`
	Window   *types.WindowSnapshot `json:"window,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to a webdesk server. Calls are never retried; a breaker
// makes them fail fast while the server keeps failing.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", "webdesk-client/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(codec.Marshal).
		SetJSONUnmarshaler(codec.Unmarshal)

	breaker := resilience.New("webdesk-api", resilience.Settings{
		Timeout: 5 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsFailure: isServerFailure,
	})

	return &Client{resty: r, breaker: breaker}
}

// WithTimeout overrides the per-call timeout
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.resty.SetTimeout(d)
	return c
}

// WithBreaker replaces the circuit breaker
func (c *Client) WithBreaker(b *resilience.Breaker) *Client {
	c.breaker = b
	return c
}

// isServerFailure counts transport errors and 5xx responses only
func isServerFailure(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// do sends one request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.breaker.Execute(func() error {
		req := c.resty.R().
			SetContext(ctx).
			SetError(&errorBody{})
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		if out != nil {
			req.SetResult(out)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("webdesk: %s %s: %w", method, path, err)
		}
		if resp.IsError() {
			apiErr := &APIError{StatusCode: resp.StatusCode()}
			if eb, ok := resp.Error().(*errorBody); ok {
				apiErr.Message = eb.Error
			}
			return apiErr
		}
		return nil
	})
}

func windowPath(id int, action string) string {
	path := "/api/windows/" + strconv.Itoa(id)
	if action != "" {
		path += "/" + action
	}
	return path
}

// Health returns the server health report
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Options returns the installation options bag
func (c *Client) Options(ctx context.Context) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := c.do(ctx, http.MethodGet, "/api/options", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Launcher returns the apps shown on the desktop
func (c *Client) Launcher(ctx context.Context) (*Launcher, error) {
	var out Launcher
	if err := c.do(ctx, http.MethodGet, "/api/launcher", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterApp registers an app
func (c *Client) RegisterApp(ctx context.Context, req types.RegisterAppRequest) error {
	return c.do(ctx, http.MethodPost, "/api/apps", req, nil)
}

// Launch activates the next window of an app, opening one if needed
func (c *Client) Launch(ctx context.Context, packageID string) (*types.WindowSnapshot, error) {
	return c.windowCall(ctx, "/api/apps/"+packageID+"/launch", nil)
}

// Open always opens a new window of an app. req may be nil.
func (c *Client) Open(ctx context.Context, packageID string, req *types.OpenWindowRequest) (*types.WindowSnapshot, error) {
	var body interface{}
	if req != nil {
		body = req
	}
	return c.windowCall(ctx, "/api/apps/"+packageID+"/open", body)
}

// OpenChild opens a window of packageID owned by parent
func (c *Client) OpenChild(ctx context.Context, parent int, packageID string) (*types.WindowSnapshot, error) {
	return c.windowCall(ctx, windowPath(parent, "children"), types.ChildWindowRequest{PackageID: packageID})
}

func (c *Client) windowCall(ctx context.Context, path string, body interface{}) (*types.WindowSnapshot, error) {
	var out struct {
		Window types.WindowSnapshot `json:"window"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Window, nil
}

// Windows lists every open window
func (c *Client) Windows(ctx context.Context) (*WindowList, error) {
	var out WindowList
	if err := c.do(ctx, http.MethodGet, "/api/windows", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Window returns one open window
func (c *Client) Window(ctx context.Context, id int) (*types.WindowSnapshot, error) {
	var out types.WindowSnapshot
	if err := c.do(ctx, http.MethodGet, windowPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Close closes a window and its descendants. It reports false when the
// window was not open.
func (c *Client) Close(ctx context.Context, id int) (bool, error) {
	var out ActionResult
	if err := c.do(ctx, http.MethodDelete, windowPath(id, ""), nil, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

// Activate brings a window to the front
func (c *Client) Activate(ctx context.Context, id int) (*ActionResult, error) {
	return c.action(ctx, id, "activate", nil)
}

// Maximize toggles between maximized and saved geometry
func (c *Client) Maximize(ctx context.Context, id int) (*ActionResult, error) {
	return c.action(ctx, id, "maximize", nil)
}

// Minimize toggles minimized state
func (c *Client) Minimize(ctx context.Context, id int) (*ActionResult, error) {
	return c.action(ctx, id, "minimize", nil)
}

// ClickDock clicks a window's dock icon
func (c *Client) ClickDock(ctx context.Context, id int) (*ActionResult, error) {
	return c.action(ctx, id, "dock", nil)
}

// Move moves a window without animation
func (c *Client) Move(ctx context.Context, id, top, left int) (*ActionResult, error) {
	return c.action(ctx, id, "move", types.MoveRequest{Top: top, Left: left})
}

// Resize resizes and positions a window without animation
func (c *Client) Resize(ctx context.Context, id, width, height, top, left int) (*ActionResult, error) {
	return c.action(ctx, id, "resize", types.ResizeRequest{Width: width, Height: height, Top: top, Left: left})
}

func (c *Client) action(ctx context.Context, id int, action string, body interface{}) (*ActionResult, error) {
	var out ActionResult
	if err := c.do(ctx, http.MethodPost, windowPath(id, action), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
