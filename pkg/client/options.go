package client

import (
	"github.com/bft-labs/plog/pkg/log"
	"github.com/bft-labs/plog/pkg/packet"
)

// Encoder turns one chunk and its message metadata into wire bytes.
type Encoder interface {
	Encode(h packet.Header, data []byte) ([]byte, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(h packet.Header, data []byte) ([]byte, error)

// Encode calls f(h, data).
func (f EncoderFunc) Encode(h packet.Header, data []byte) ([]byte, error) {
	return f(h, data)
}

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	logger    log.Logger
	transport Transport
	encoder   Encoder
	observer  Observer
}

func defaultOptions() options {
	return options{
		logger:    log.NewNoopLogger(),
		transport: UDPTransport{},
		encoder:   EncoderFunc(packet.Encode),
		observer:  noopObserver{},
	}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTransport replaces the UDP transport, typically in tests.
func WithTransport(t Transport) Option {
	return func(o *options) {
		if t != nil {
			o.transport = t
		}
	}
}

// WithEncoder replaces the packet encoding.
func WithEncoder(e Encoder) Option {
	return func(o *options) {
		if e != nil {
			o.encoder = e
		}
	}
}

// WithObserver registers an observer for handle and message events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
