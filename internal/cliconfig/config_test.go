package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/plog/pkg/client"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %v, want 127.0.0.1", cfg.Host)
	}
	if cfg.Port != 23456 {
		t.Errorf("Port = %v, want 23456", cfg.Port)
	}
	if cfg.ChunkSize != 64000 {
		t.Errorf("ChunkSize = %v, want 64000", cfg.ChunkSize)
	}
	if cfg.FollowPoll != time.Second {
		t.Errorf("FollowPoll = %v, want 1s", cfg.FollowPoll)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		wantClass error
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "empty log level",
			mutate: func(c *Config) { c.LogLevel = "" },
		},
		{
			name:      "missing host",
			mutate:    func(c *Config) { c.Host = "" },
			wantErr:   true,
			wantClass: client.ErrInvalidConfig,
		},
		{
			name:      "chunk size zero",
			mutate:    func(c *Config) { c.ChunkSize = 0 },
			wantErr:   true,
			wantClass: client.ErrInvalidConfig,
		},
		{
			name:      "port out of range",
			mutate:    func(c *Config) { c.Port = 65536 },
			wantErr:   true,
			wantClass: client.ErrInvalidConfig,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "chatty" },
			wantErr: true,
		},
		{
			name:    "non-positive poll",
			mutate:  func(c *Config) { c.FollowPoll = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantClass != nil && !errors.Is(err, tt.wantClass) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantClass)
			}
		})
	}
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := Config{Host: "logs.internal", Port: 514, ChunkSize: 1200}

	got := cfg.ClientConfig()
	want := client.Config{Host: "logs.internal", Port: 514, ChunkSize: 1200}
	if got != want {
		t.Errorf("ClientConfig() = %+v, want %+v", got, want)
	}
}
