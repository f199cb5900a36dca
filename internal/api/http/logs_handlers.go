package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxLogEntries bounds one log batch from the desktop view
const MaxLogEntries = 500

// UILogEntry is a log line produced by the desktop view
type UILogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
	WindowID  int                    `json:"window_id,omitempty"`
}

// UILogStreamRequest is a batch of logs from the desktop view
type UILogStreamRequest struct {
	Source  string       `json:"source"`
	Entries []UILogEntry `json:"entries"`
}

// StreamLogs forwards desktop view logs into the server log
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req UILogStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log request format"})
		return
	}

	if req.Source != "desktop" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log source"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no log entries provided"})
		return
	}
	if len(req.Entries) > MaxLogEntries {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many log entries"})
		return
	}

	logger := h.logger.Named("ui")
	for _, entry := range req.Entries {
		logUIEntry(logger, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
		"timestamp":        time.Now().Unix(),
	})
}

// logUIEntry writes one desktop view log entry
func logUIEntry(logger *zap.Logger, entry UILogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+2)
	fields = append(fields, zap.String("ui_timestamp", entry.Timestamp))
	if entry.WindowID != 0 {
		fields = append(fields, logging.WindowID(entry.WindowID))
	}

	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch entry.Level {
	case "error":
		logger.Error(entry.Message, fields...)
	case "warn":
		logger.Warn(entry.Message, fields...)
	case "debug", "verbose":
		logger.Debug(entry.Message, fields...)
	default:
		logger.Info(entry.Message, fields...)
	}
}
