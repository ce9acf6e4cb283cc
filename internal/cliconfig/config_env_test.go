package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"PLOG_HOST":         "env-host",
				"PLOG_PORT":         "6000",
				"PLOG_CHUNK_SIZE":   "512",
				"PLOG_LOG_LEVEL":    "error",
				"PLOG_METRICS_ADDR": "127.0.0.1:9102",
				"PLOG_FOLLOW_POLL":  "5s",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Host:        "env-host",
				Port:        6000,
				ChunkSize:   512,
				LogLevel:    "error",
				MetricsAddr: "127.0.0.1:9102",
				FollowPoll:  5 * time.Second,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"PLOG_HOST": "env-host",
				"PLOG_PORT": "6000",
			},
			changed:  map[string]bool{"host": true, "port": true},
			initial:  Config{Host: "flag-host", Port: 7000},
			expected: Config{Host: "flag-host", Port: 7000},
		},
		{
			name:     "ignores non-positive ints",
			envVars:  map[string]string{"PLOG_CHUNK_SIZE": "0"},
			changed:  map[string]bool{},
			initial:  Config{ChunkSize: 64000},
			expected: Config{ChunkSize: 64000},
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"PLOG_PORT": "not-a-number"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"PLOG_FOLLOW_POLL": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	keys := []string{"PLOG_HOST", "PLOG_PORT", "PLOG_CHUNK_SIZE", "PLOG_LOG_LEVEL", "PLOG_METRICS_ADDR", "PLOG_FOLLOW_POLL"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
