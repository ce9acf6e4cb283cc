package client

import (
	"errors"
	"fmt"
	"net"

	"github.com/bft-labs/plog/pkg/packet"
)

var (
	errWrite = errors.New("write: network is unreachable")
	errClose = errors.New("close: bad file descriptor")
)

type fakeAddr string

func (a fakeAddr) Network() string { return "udp" }
func (a fakeAddr) String() string  { return string(a) }

// fakeConn records datagrams. Writes fail while its transport has failures queued.
type fakeConn struct {
	t        *fakeTransport
	writes   [][]byte
	addrs    []string
	closes   int
	closeErr error
}

func (c *fakeConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	if c.t.failWrites > 0 {
		c.t.failWrites--
		return 0, errWrite
	}
	if c.t.shortWrites > 0 {
		c.t.shortWrites--
		return len(p) - 1, nil
	}
	c.writes = append(c.writes, append([]byte(nil), p...))
	c.addrs = append(c.addrs, addr.String())
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.closes++
	return c.closeErr
}

type fakeTransport struct {
	conns     []*fakeConn
	addresses []string

	openErrs    int
	failWrites  int
	shortWrites int
	closeErr    error
}

func (t *fakeTransport) Open(address string) (PacketConn, net.Addr, error) {
	t.addresses = append(t.addresses, address)
	if t.openErrs > 0 {
		t.openErrs--
		return nil, nil, errors.New("socket: too many open files")
	}
	c := &fakeConn{t: t, closeErr: t.closeErr}
	t.conns = append(t.conns, c)
	return c, fakeAddr(address), nil
}

func (t *fakeTransport) opens() int {
	return len(t.conns)
}

// datagrams returns every successful write across all sockets, in order.
func (t *fakeTransport) datagrams() [][]byte {
	var out [][]byte
	for _, c := range t.conns {
		out = append(out, c.writes...)
	}
	return out
}

type encodeCall struct {
	h    packet.Header
	data string
}

// recordingEncoder captures encode arguments and produces "count:index:data".
type recordingEncoder struct {
	calls []encodeCall
	err   error
}

func (e *recordingEncoder) Encode(h packet.Header, data []byte) ([]byte, error) {
	e.calls = append(e.calls, encodeCall{h: h, data: string(data)})
	if e.err != nil {
		return nil, e.err
	}
	return []byte(fmt.Sprintf("%d:%d:%s", h.ChunkCount, h.ChunkIndex, data)), nil
}

type recordingObserver struct {
	opened int
	closed []error
	sent   []uint32
	failed []uint32
}

func (o *recordingObserver) HandleOpened()                 { o.opened++ }
func (o *recordingObserver) HandleClosed(cause error)      { o.closed = append(o.closed, cause) }
func (o *recordingObserver) SendFailed(id uint32, _ error) { o.failed = append(o.failed, id) }

func (o *recordingObserver) MessageSent(id uint32, _ int, _ int) {
	o.sent = append(o.sent, id)
}
