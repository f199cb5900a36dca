package script

import (
	"time"
)

// Config defines hook runtime configuration
type Config struct {
	Timeout       time.Duration // Execution timeout per hook run
	EnableConsole bool          // Route console.* to the logger
	PoolSize      int           // Number of reusable runtimes
}

// Result holds execution result
type Result struct {
	Value    interface{}   // Return value
	Console  []LogEntry    // Console output
	Duration time.Duration // Execution time
}

// LogEntry represents console output
type LogEntry struct {
	Level   string    // log, info, warn, error
	Message string    // Log message
	Time    time.Time // Timestamp
}

// DefaultConfig returns the default hook runtime configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       2 * time.Second,
		EnableConsole: true,
		PoolSize:      2,
	}
}
