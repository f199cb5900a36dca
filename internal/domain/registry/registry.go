package registry

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Registry holds every launchable app. Apps are registered once and
// never removed.
type Registry struct {
	mu        sync.RWMutex
	apps      map[string]*types.AppDescriptor // Protected by mu
	order     []string                        // Protected by mu
	sanitizer *bluemonday.Policy
	publisher types.Publisher
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	hooks     HookFactory
}

// HookFactory compiles manifest hook scripts
type HookFactory interface {
	CloseHook(packageID, src string) (types.CloseHook, error)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		apps:      make(map[string]*types.AppDescriptor),
		sanitizer: bluemonday.StrictPolicy(),
		publisher: types.NopPublisher{},
		logger:    zap.NewNop(),
	}
}

// WithPublisher sends launcher changes to desktop views
func (r *Registry) WithPublisher(publisher types.Publisher) *Registry {
	if publisher != nil {
		r.publisher = publisher
	}
	return r
}

// WithLogger adds logging to the registry
func (r *Registry) WithLogger(logger *zap.Logger) *Registry {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithMetrics adds metrics tracking to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// WithHooks enables scripted hooks in manifests
func (r *Registry) WithHooks(hooks HookFactory) *Registry {
	r.hooks = hooks
	return r
}

// Register adds an app. Registering a package id twice fails with
// types.ErrDuplicateApp.
func (r *Registry) Register(desc types.AppDescriptor) error {
	if err := utils.ValidatePackageID(desc.PackageID); err != nil {
		return err
	}
	if err := utils.ValidateIcon(desc.Icon); err != nil {
		return err
	}

	name := r.sanitizeName(desc.Name)
	if err := utils.ValidateName(name, "name"); err != nil {
		return err
	}
	desc.Name = name

	if desc.Props != nil {
		props := make(map[string]interface{}, len(desc.Props))
		for k, v := range desc.Props {
			props[k] = v
		}
		desc.Props = props
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[desc.PackageID]; exists {
		return fmt.Errorf("%w: %s", types.ErrDuplicateApp, desc.PackageID)
	}

	r.apps[desc.PackageID] = &desc
	r.order = append(r.order, desc.PackageID)

	r.metrics.SetRegistryApps(len(r.apps))
	r.logger.Info("app registered",
		logging.PackageID(desc.PackageID),
		zap.String("name", desc.Name),
		zap.Bool("hidden", desc.HiddenInDesktop),
	)
	r.publisher.Publish(types.Event{Type: types.EventLauncher, Payload: r.launcherLocked()})
	return nil
}

// RegisterManifest builds a descriptor from a manifest and registers it
func (r *Registry) RegisterManifest(m Manifest) error {
	desc, err := m.Descriptor(r.hooks)
	if err != nil {
		return err
	}
	return r.Register(desc)
}

// Lookup returns the descriptor of packageID
func (r *Registry) Lookup(packageID string) (*types.AppDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.apps[packageID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownApp, packageID)
	}

	descCopy := *desc
	return &descCopy, nil
}

// Launcher returns the desktop projection of visible apps in
// registration order
func (r *Registry) Launcher() []types.LauncherEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.launcherLocked()
}

// View calls fn with the launcher while holding the registry lock. fn
// must not register apps.
func (r *Registry) View(fn func([]types.LauncherEntry)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.launcherLocked())
}

func (r *Registry) launcherLocked() []types.LauncherEntry {
	entries := make([]types.LauncherEntry, 0, len(r.order))
	for _, id := range r.order {
		desc := r.apps[id]
		if desc.HiddenInDesktop {
			continue
		}
		entries = append(entries, desc.ToLauncherEntry())
	}
	return entries
}

// List returns every descriptor, hidden ones included, in registration order
func (r *Registry) List() []types.AppDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AppDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.apps[id])
	}
	return out
}

// Stats returns registry statistics
func (r *Registry) Stats() types.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := types.RegistryStats{TotalApps: len(r.apps)}
	for _, desc := range r.apps {
		if desc.HiddenInDesktop {
			stats.HiddenApps++
		}
	}
	return stats
}

// sanitizeName strips markup from a display name
func (r *Registry) sanitizeName(name string) string {
	return strings.TrimSpace(html.UnescapeString(r.sanitizer.Sanitize(name)))
}
