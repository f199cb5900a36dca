package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the REST API on router
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")

	api.GET("/options", h.Options)
	api.POST("/logs", h.StreamLogs)

	// App registry
	api.GET("/launcher", h.Launcher)
	api.POST("/apps", h.RegisterApp)
	api.GET("/apps/:packageId", h.GetApp)
	api.POST("/apps/:packageId/launch", h.LaunchApp)
	api.POST("/apps/:packageId/open", h.OpenApp)

	// Windows
	api.GET("/windows", h.ListWindows)
	api.GET("/windows/:id", h.GetWindow)
	api.DELETE("/windows/:id", h.CloseWindow)
	api.POST("/windows/:id/activate", h.ActivateWindow)
	api.POST("/windows/:id/move", h.MoveWindow)
	api.POST("/windows/:id/resize", h.ResizeWindow)
	api.POST("/windows/:id/maximize", h.MaximizeWindow)
	api.POST("/windows/:id/minimize", h.MinimizeWindow)
	api.POST("/windows/:id/dock", h.ClickDock)
	api.POST("/windows/:id/children", h.CreateChildWindow)
}
