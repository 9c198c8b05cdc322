package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		want    zap.AtomicLevel
		wantErr bool
	}{
		{level: "debug", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{level: "info", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{level: "", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{level: "warn", want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{level: "error", want: zap.NewAtomicLevelAt(zap.ErrorLevel)},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want.Level()))
			if tt.want.Level() > zap.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want.Level()-1))
			}
		})
	}
}
