package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid file config",
			config:  Config{Backend: BackendFile, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data", Latency: time.Second},
			wantErr: nil,
		},
		{
			name:    "file backend needs a data dir",
			config:  Config{Backend: BackendFile},
			wantErr: ErrDataDirEmpty,
		},
		{
			name:    "memory backend ignores data dir",
			config:  Config{Backend: BackendMemory},
			wantErr: nil,
		},
		{
			name:    "negative latency rejected",
			config:  Config{Backend: BackendMemory, Latency: -time.Millisecond},
			wantErr: ErrLatencyInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
