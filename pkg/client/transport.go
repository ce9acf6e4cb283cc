package client

import "net"

// PacketConn is the channel handle a Client writes datagrams to.
// *net.UDPConn and every net.PacketConn satisfy it.
type PacketConn interface {
	WriteTo(p []byte, addr net.Addr) (int, error)
	Close() error
}

// Transport opens channel handles.
type Transport interface {
	// Open creates a handle and resolves address into the destination the
	// handle writes to.
	Open(address string) (PacketConn, net.Addr, error)
}

// UDPTransport opens unconnected UDP sockets.
type UDPTransport struct {
	// Network is "udp", "udp4" or "udp6". Empty means "udp".
	Network string

	// LocalAddr is the local address to bind. Empty binds an ephemeral port.
	LocalAddr string
}

// Open resolves address and binds a fresh UDP socket.
func (t UDPTransport) Open(address string) (PacketConn, net.Addr, error) {
	network := t.Network
	if network == "" {
		network = "udp"
	}
	local := t.LocalAddr
	if local == "" {
		local = ":0"
	}

	raddr, err := net.ResolveUDPAddr(network, address)
	if err != nil {
		return nil, nil, err
	}
	conn, err := net.ListenPacket(network, local)
	if err != nil {
		return nil, nil, err
	}
	return conn, raddr, nil
}
