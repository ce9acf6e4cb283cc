// Package client sends plog messages over UDP.
//
// A message is split into chunks of at most Config.ChunkSize bytes. Each chunk
// is framed by the packet package and written as its own datagram, in index
// order, before Send returns. Every Send consumes one message id, starting at
// zero, so a receiver can tell the chunks of different messages apart.
//
// Delivery is fire-and-forget: nothing is acknowledged or retransmitted.
//
// # Usage
//
//	c, err := client.New(client.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	id, err := c.Send([]byte("hello"))
//
// # Channel Handle
//
// The UDP socket is opened on the first Send and reused afterwards. When a
// write fails the socket is closed and forgotten, the error is returned, and
// the next Send opens a fresh socket. Failed messages are not retried.
//
// # Concurrency
//
// A Client must not be used from several goroutines at once. Wrap it with
// NewSyncClient when it is shared.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package client
