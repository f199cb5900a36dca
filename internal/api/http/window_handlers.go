package http

import (
	"net/http"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// ListWindows lists all open windows
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.store.All(),
		"stats":   h.store.Stats(),
	})
}

// GetWindow returns one open window
func (h *Handlers) GetWindow(c *gin.Context) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	snap, err := h.store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ActivateWindow brings a window to the front
func (h *Handlers) ActivateWindow(c *gin.Context) {
	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.Activate()
	})
}

// MoveWindow moves a window without animation
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req types.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.Move(req.Top, req.Left)
	})
}

// ResizeWindow resizes a window without animation
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req types.ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.Resize(req.Width, req.Height, req.Top, req.Left)
	})
}

// MaximizeWindow toggles between maximized and saved geometry
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.ToggleMaximize()
	})
}

// MinimizeWindow toggles minimized state
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.ToggleMinimize()
	})
}

// ClickDock handles a click on a window's dock icon
func (h *Handlers) ClickDock(c *gin.Context) {
	h.mutate(c, func(ctrl *window.Controller) bool {
		return ctrl.ClickDockIcon()
	})
}

// CloseWindow closes a window and its descendants
func (h *Handlers) CloseWindow(c *gin.Context) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   h.store.Close(id),
		"window_id": id,
	})
}

// CreateChildWindow opens a window owned by another window
func (h *Handlers) CreateChildWindow(c *gin.Context) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	var req types.ChildWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parent, err := h.store.Controller(id)
	if err != nil {
		respondError(c, err)
		return
	}

	child, err := parent.CreateChildWindow(req.PackageID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWindow(c, http.StatusCreated, child)
}

// mutate applies op to the window named by :id. Absent windows are a
// no-op reported as success=false.
func (h *Handlers) mutate(c *gin.Context, op func(*window.Controller) bool) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	ctrl, err := h.store.Controller(id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"window_id": id,
		})
		return
	}

	success := op(ctrl)
	resp := gin.H{
		"success":   success,
		"window_id": id,
	}
	if snap, err := ctrl.Snapshot(); err == nil {
		resp["window"] = snap
	}
	c.JSON(http.StatusOK, resp)
}
