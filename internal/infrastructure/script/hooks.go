package script

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"go.uber.org/zap"
)

// Hooks turns manifest script snippets into app lifecycle hooks.
type Hooks struct {
	pool    *Pool
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewHooks creates a hook factory backed by a runtime pool.
func NewHooks(config Config, logger *zap.Logger) (*Hooks, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := NewPool(config, logger.Named("console"))
	if err != nil {
		return nil, err
	}
	return &Hooks{pool: pool, logger: logger}, nil
}

// WithMetrics adds metrics tracking to hook runs
func (h *Hooks) WithMetrics(metrics *monitoring.Metrics) *Hooks {
	h.metrics = metrics
	return h
}

// CloseHook compiles src into an on-close hook for packageID. The script
// sees a global `window` object with `id` and `packageId`. Failures are
// logged and never reach the window store.
func (h *Hooks) CloseHook(packageID, src string) (types.CloseHook, error) {
	prog, err := Compile(fmt.Sprintf("%s/on_close.js", packageID), src)
	if err != nil {
		return nil, err
	}

	return func(info types.WindowInfo) {
		timer := monitoring.NewTimer(h.metrics)
		globals := map[string]interface{}{
			"window": map[string]interface{}{
				"id":        info.ID,
				"packageId": info.PackageID,
			},
		}

		result, err := h.pool.Execute(context.Background(), prog, globals)
		if err != nil {
			timer.Stop("error")
			h.logger.Warn("on_close hook failed",
				logging.PackageID(packageID),
				logging.WindowID(info.ID),
				zap.Error(err))
			return
		}

		timer.Stop("ok")
		h.logger.Debug("on_close hook ran",
			logging.PackageID(packageID),
			logging.WindowID(info.ID),
			zap.Duration("duration", result.Duration))
	}, nil
}

// Close releases the runtime pool.
func (h *Hooks) Close() error {
	return h.pool.Close()
}
