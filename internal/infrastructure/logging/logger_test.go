package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "production", cfg: ProductionConfig("info")},
		{name: "development", cfg: DevelopmentConfig()},
		{name: "no outputs", cfg: Config{Level: "warn"}},
		{name: "bad level", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	logger, err := New(ProductionConfig("warn"))
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestComponentAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &Logger{Logger: zap.New(core)}

	logger.Component("store").Info("window opened", WindowID(3), PackageID("calc"), ClientID("abc"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, map[string]interface{}{
		"window_id":  int64(3),
		"package_id": "calc",
		"client_id":  "abc",
	}, entries[0].ContextMap())
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	require.NotNil(t, logger.Component("stream"))
	logger.Component("stream").Info("discarded")
}
