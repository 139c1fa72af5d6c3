package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "complete config",
			config: Config{ListenAddr: "localhost:8080", DataDir: "/tmp/ticklist", ServerURL: "http://localhost:8080"},
		},
		{
			name:    "missing listen addr",
			config:  Config{DataDir: "/tmp/ticklist", ServerURL: "http://localhost:8080"},
			wantErr: ErrListenAddrEmpty,
		},
		{
			name:    "missing data dir",
			config:  Config{ListenAddr: "localhost:8080", ServerURL: "http://localhost:8080"},
			wantErr: ErrDataDirEmpty,
		},
		{
			name:    "missing server url",
			config:  Config{ListenAddr: "localhost:8080", DataDir: "/tmp/ticklist"},
			wantErr: ErrServerURLEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
