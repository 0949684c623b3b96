package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/at-ishikawa/shokyuu/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{
			name:      "production logger at info",
			cfg:       config.LogConfig{Level: "info"},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "development logger at debug",
			cfg:       config.LogConfig{Level: "debug", Development: true},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "empty level keeps the production default",
			cfg:       config.LogConfig{},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:    "unknown level",
			cfg:     config.LogConfig{Level: "verbose"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, got.Level())
		})
	}
}
