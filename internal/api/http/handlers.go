package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root and health endpoints
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *registry.Registry
	store    *window.Store
	options  config.Options
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *registry.Registry, store *window.Store, options config.Options, logger *zap.Logger) *Handlers {
	if options == nil {
		options = config.Options{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		store:    store,
		options:  options,
		logger:   logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "webdesk",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"version":  Version,
		"registry": h.registry.Stats(),
		"windows":  h.store.Stats(),
	})
}

// Options returns the installation options bag
func (h *Handlers) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.options)
}

// Launcher returns the apps shown on the desktop
func (h *Handlers) Launcher(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.registry.Launcher(),
		"stats": h.registry.Stats(),
	})
}

// GetApp returns one registered app
func (h *Handlers) GetApp(c *gin.Context) {
	desc, err := h.registry.Lookup(c.Param("packageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

// RegisterApp registers an app
func (h *Handlers) RegisterApp(c *gin.Context) {
	var req types.RegisterAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registry.RegisterManifest(registry.ManifestFromRequest(req)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"package_id": req.PackageID,
	})
}

// LaunchApp activates the next window of an app, opening one if needed
func (h *Handlers) LaunchApp(c *gin.Context) {
	ctrl, err := h.store.ShowOrCreate(c.Param("packageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWindow(c, http.StatusOK, ctrl)
}

// OpenApp always opens a new window of an app
func (h *Handlers) OpenApp(c *gin.Context) {
	var req types.OpenWindowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctrl, err := h.store.Open(c.Param("packageId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWindow(c, http.StatusCreated, ctrl)
}

// respondWindow writes the snapshot of the window behind ctrl
func (h *Handlers) respondWindow(c *gin.Context, status int, ctrl *window.Controller) {
	snap, err := ctrl.Snapshot()
	if err != nil {
		// Closed by a hook or another client in between
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"success": true,
		"window":  snap,
	})
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrUnknownApp), errors.Is(err, types.ErrUnknownWindow):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicateApp):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

// windowID parses the :id path parameter
func windowID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window id must be a positive integer"})
		return 0, false
	}
	return id, true
}
