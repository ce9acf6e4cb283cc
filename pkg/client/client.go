package client

import (
	"fmt"
	"io"
	"net"

	"github.com/bft-labs/plog/pkg/log"
	"github.com/bft-labs/plog/pkg/packet"
)

// Client splits messages into chunks and writes them to one destination.
// Use New() to create an instance.
type Client struct {
	cfg       Config
	address   string
	transport Transport
	encoder   Encoder
	logger    log.Logger
	observer  Observer

	nextID uint32

	// conn and addr are nil until the first write, and again after a
	// transport failure.
	conn PacketConn
	addr net.Addr
}

// New creates a Client for cfg. No socket is opened until the first Send.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		cfg:       cfg,
		address:   cfg.Address(),
		transport: o.transport,
		encoder:   o.encoder,
		logger:    o.logger,
		observer:  o.observer,
	}, nil
}

// Send writes message as one or more packets and returns its message id.
//
// The id is consumed on entry and is returned even when Send fails, so the
// caller can tell which message was lost. On a transport failure the
// remaining chunks are dropped, the socket is closed, and the returned error
// wraps ErrTransport. Encoding failures are returned as they are.
func (c *Client) Send(message []byte) (uint32, error) {
	id := c.nextID
	c.nextID++

	total := len(message)
	size := c.cfg.ChunkSize
	count := packet.Count(total, size)

	for i := 0; i < count; i++ {
		start := i * size
		end := min(start+size, total)

		b, err := c.encoder.Encode(packet.Header{
			MessageID:   id,
			TotalLength: total,
			ChunkSize:   size,
			ChunkCount:  count,
			ChunkIndex:  i,
		}, message[start:end])
		if err != nil {
			err = fmt.Errorf("encode message %d chunk %d/%d: %w", id, i, count, err)
			c.observer.SendFailed(id, err)
			return id, err
		}

		if err := c.write(b); err != nil {
			c.logger.Warn("message dropped",
				log.Uint32("message_id", id),
				log.Int("chunk_index", i),
				log.Int("chunk_count", count),
				log.Err(err),
			)
			c.observer.SendFailed(id, err)
			return id, err
		}
	}

	c.logger.Debug("message sent",
		log.Uint32("message_id", id),
		log.Int("bytes", total),
		log.Int("chunks", count),
	)
	c.observer.MessageSent(id, count, total)
	return id, nil
}

// Close releases the socket, if one is open. A later Send opens a new one.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.addr = nil, nil
	c.observer.HandleClosed(nil)
	return err
}

// Destination returns the host:port packets are written to.
func (c *Client) Destination() string {
	return c.address
}

// ChunkSize returns the maximum number of message bytes per packet.
func (c *Client) ChunkSize() int {
	return c.cfg.ChunkSize
}

// NextMessageID returns the id the next Send will use.
func (c *Client) NextMessageID() uint32 {
	return c.nextID
}

// write sends one datagram, opening the socket first if needed. Any failure
// leaves the client without a socket.
func (c *Client) write(b []byte) error {
	if c.conn == nil {
		conn, addr, err := c.transport.Open(c.address)
		if err != nil {
			return fmt.Errorf("%w: open %s: %w", ErrTransport, c.address, err)
		}
		c.conn, c.addr = conn, addr
		c.logger.Debug("socket opened", log.String("destination", c.address))
		c.observer.HandleOpened()
	}

	n, err := c.conn.WriteTo(b, c.addr)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		c.teardown(err)
		return fmt.Errorf("%w: write %s: %w", ErrTransport, c.address, err)
	}
	return nil
}

// teardown drops a broken socket. Close errors are not actionable and must
// not hide cause.
func (c *Client) teardown(cause error) {
	if cerr := c.conn.Close(); cerr != nil {
		c.logger.Debug("close broken socket", log.Err(cerr))
	}
	c.conn, c.addr = nil, nil
	c.observer.HandleClosed(cause)
}
