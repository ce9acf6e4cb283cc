// Package plog sends messages to a plog daemon over UDP, splitting messages
// larger than one datagram into chunks the daemon reassembles.
//
// Example usage:
//
//	cfg := plog.DefaultConfig()
//	cfg.Host = "logs.internal"
//	c, err := plog.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//	if _, err := c.Send([]byte("deploy finished")); err != nil {
//	    log.Print(err)
//	}
package plog

import "github.com/bft-labs/plog/pkg/client"

// Config holds the destination and chunk size of a Client.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = client.Config

// Client sends messages. It must not be shared between goroutines without
// NewSyncClient.
type Client = client.Client

// Option configures optional behavior of a Client.
type Option = client.Option

// DefaultConfig returns a Config pointing at a plog daemon on localhost.
func DefaultConfig() Config {
	return client.DefaultConfig()
}

// New creates a Client. The socket is opened on the first Send.
func New(cfg Config, opts ...Option) (*Client, error) {
	return client.New(cfg, opts...)
}

// NewSyncClient makes c safe for concurrent use.
func NewSyncClient(c *Client) *client.SyncClient {
	return client.NewSyncClient(c)
}

// DefaultPort is the plog daemon's UDP port.
const DefaultPort = client.DefaultPort
