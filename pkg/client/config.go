package client

import (
	"fmt"
	"net"
	"strconv"

	"github.com/bft-labs/plog/pkg/packet"
)

const (
	// DefaultHost is where a plog daemon listens on the local machine.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the plog daemon's UDP port.
	DefaultPort = 23456

	// DefaultChunkSize keeps a chunk and its header inside one datagram.
	DefaultChunkSize = 64000
)

// Config holds the destination and chunking parameters of a Client.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Host is the destination host name or IP address.
	Host string

	// Port is the destination UDP port.
	Port int

	// ChunkSize is the maximum number of message bytes carried by one packet.
	// Must be between 1 and packet.MaxChunkSize.
	ChunkSize int
}

// DefaultConfig returns a Config pointing at a local plog daemon.
func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		ChunkSize: DefaultChunkSize,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.ChunkSize < 1 || c.ChunkSize > packet.MaxChunkSize {
		return fmt.Errorf("%w: chunk size %d not in 1..%d", ErrInvalidConfig, c.ChunkSize, packet.MaxChunkSize)
	}
	return nil
}

// Address returns the destination as host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
