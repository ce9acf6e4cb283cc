package client

import "errors"

var (
	// ErrTransport wraps every failure to open the channel or write a datagram.
	// The channel has already been torn down when it is returned.
	ErrTransport = errors.New("plog: transport failure")

	// ErrInvalidConfig is returned by New when Config.Validate fails.
	ErrInvalidConfig = errors.New("plog: invalid configuration")
)
