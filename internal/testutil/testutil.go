// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

// MockHookFactory is a mock implementation of registry.HookFactory for testing.
type MockHookFactory struct {
	mock.Mock
}

// CloseHook mocks the CloseHook method.
func (m *MockHookFactory) CloseHook(packageID, src string) (types.CloseHook, error) {
	args := m.Called(packageID, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.CloseHook), args.Error(1)
}

// NewMockHookFactory creates a mock hook factory whose hooks append the
// closed window to fired.
func NewMockHookFactory(t *testing.T, fired *[]types.WindowInfo) *MockHookFactory {
	t.Helper()
	m := new(MockHookFactory)

	var mu sync.Mutex
	hook := types.CloseHook(func(info types.WindowInfo) {
		mu.Lock()
		defer mu.Unlock()
		*fired = append(*fired, info)
	})

	// Default behavior: every script compiles
	m.On("CloseHook", mock.Anything, mock.Anything).
		Return(hook, nil).
		Maybe()

	return m
}

// EventRecorder is a publisher that keeps every event.
type EventRecorder struct {
	mu     sync.Mutex
	events []types.Event
}

// Publish records the event.
func (r *EventRecorder) Publish(e types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Event(nil), r.events...)
}

// OfType returns the recorded events of the given type.
func (r *EventRecorder) OfType(eventType string) []types.Event {
	var out []types.Event
	for _, e := range r.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event, if any.
func (r *EventRecorder) Last() (types.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return types.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// CreateTestApp creates a test descriptor with default values.
func CreateTestApp(t *testing.T, packageID string, overrides map[string]interface{}) types.AppDescriptor {
	t.Helper()

	desc := types.AppDescriptor{
		PackageID: packageID,
		Name:      "Test App",
		Icon:      "📦",
	}

	// Apply overrides
	if name, ok := overrides["name"].(string); ok {
		desc.Name = name
	}
	if icon, ok := overrides["icon"].(string); ok {
		desc.Icon = icon
	}
	if width, ok := overrides["default_width"].(types.Dimension); ok {
		desc.DefaultWidth = width
	}
	if height, ok := overrides["default_height"].(types.Dimension); ok {
		desc.DefaultHeight = height
	}
	if maximized, ok := overrides["default_maximized"].(bool); ok {
		desc.DefaultMaximized = maximized
	}
	if hidden, ok := overrides["hidden_in_desktop"].(bool); ok {
		desc.HiddenInDesktop = hidden
	}
	if props, ok := overrides["props"].(map[string]interface{}); ok {
		desc.Props = props
	}
	if hook, ok := overrides["on_close"].(types.CloseHook); ok {
		desc.OnClose = hook
	}

	return desc
}
