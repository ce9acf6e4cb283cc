package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// HeaderLen is the fixed size of the packet header in bytes.
	HeaderLen = 16

	// ProtocolVersion is the only header version this package emits and accepts.
	ProtocolVersion byte = 0x00

	// TypeMultipart marks a packet carrying one chunk of a message.
	TypeMultipart byte = 0x01

	// MaxDatagram is the largest UDP payload over IPv4.
	MaxDatagram = 65507

	// MaxChunkSize is the largest chunk size whose packets still fit in one datagram.
	MaxChunkSize = MaxDatagram - HeaderLen
)

var (
	ErrShortPacket    = errors.New("packet: short packet")
	ErrUnknownVersion = errors.New("packet: unknown version")
	ErrUnknownType    = errors.New("packet: unknown packet type")
	ErrInvalidField   = errors.New("packet: invalid field")
	ErrFieldOverflow  = errors.New("packet: field overflows wire width")
)

// Header is the metadata carried by every packet of a message.
type Header struct {
	MessageID   uint32
	TotalLength int
	ChunkSize   int
	ChunkCount  int
	ChunkIndex  int
}

// Count returns the number of chunks a message of totalLength bytes is split
// into. An empty message still occupies one chunk.
func Count(totalLength, chunkSize int) int {
	if chunkSize < 1 || totalLength <= chunkSize {
		return 1
	}
	return (totalLength + chunkSize - 1) / chunkSize
}

// Encode returns the wire bytes for one chunk.
func Encode(h Header, data []byte) ([]byte, error) {
	if err := validate(h, len(data)); err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderLen+len(data))
	buf[0] = ProtocolVersion
	buf[1] = TypeMultipart
	binary.BigEndian.PutUint16(buf[2:4], uint16(h.ChunkCount))
	binary.BigEndian.PutUint16(buf[4:6], uint16(h.ChunkIndex))
	binary.BigEndian.PutUint16(buf[6:8], uint16(h.ChunkSize))
	binary.BigEndian.PutUint32(buf[8:12], h.MessageID)
	binary.BigEndian.PutUint32(buf[12:16], uint32(h.TotalLength))
	copy(buf[HeaderLen:], data)
	return buf, nil
}

// Decode parses one packet. The returned data aliases b.
func Decode(b []byte) (Header, []byte, error) {
	if len(b) < HeaderLen {
		return Header{}, nil, ErrShortPacket
	}
	if b[0] != ProtocolVersion {
		return Header{}, nil, fmt.Errorf("%w: %#x", ErrUnknownVersion, b[0])
	}
	if b[1] != TypeMultipart {
		return Header{}, nil, fmt.Errorf("%w: %#x", ErrUnknownType, b[1])
	}

	h := Header{
		ChunkCount:  int(binary.BigEndian.Uint16(b[2:4])),
		ChunkIndex:  int(binary.BigEndian.Uint16(b[4:6])),
		ChunkSize:   int(binary.BigEndian.Uint16(b[6:8])),
		MessageID:   binary.BigEndian.Uint32(b[8:12]),
		TotalLength: int(binary.BigEndian.Uint32(b[12:16])),
	}
	data := b[HeaderLen:]
	if err := validate(h, len(data)); err != nil {
		return Header{}, nil, err
	}
	return h, data, nil
}

// validate checks that h fits the wire widths and that a chunk of dataLen
// bytes belongs at h.ChunkIndex of a message described by h.
func validate(h Header, dataLen int) error {
	switch {
	case h.ChunkSize < 1:
		return fmt.Errorf("%w: chunk size %d", ErrInvalidField, h.ChunkSize)
	case h.ChunkCount < 1:
		return fmt.Errorf("%w: chunk count %d", ErrInvalidField, h.ChunkCount)
	case h.ChunkIndex < 0 || h.ChunkIndex >= h.ChunkCount:
		return fmt.Errorf("%w: chunk index %d of %d", ErrInvalidField, h.ChunkIndex, h.ChunkCount)
	case h.TotalLength < 0:
		return fmt.Errorf("%w: message length %d", ErrInvalidField, h.TotalLength)
	}

	if h.ChunkSize > math.MaxUint16 {
		return fmt.Errorf("%w: chunk size %d", ErrFieldOverflow, h.ChunkSize)
	}
	if h.ChunkCount > math.MaxUint16 {
		return fmt.Errorf("%w: chunk count %d", ErrFieldOverflow, h.ChunkCount)
	}
	if uint64(h.TotalLength) > math.MaxUint32 {
		return fmt.Errorf("%w: message length %d", ErrFieldOverflow, h.TotalLength)
	}

	if want := Count(h.TotalLength, h.ChunkSize); h.ChunkCount != want {
		return fmt.Errorf("%w: chunk count %d, message needs %d", ErrInvalidField, h.ChunkCount, want)
	}

	want := h.TotalLength - h.ChunkIndex*h.ChunkSize
	if want > h.ChunkSize {
		want = h.ChunkSize
	}
	if dataLen != want {
		return fmt.Errorf("%w: chunk %d carries %d bytes, want %d", ErrInvalidField, h.ChunkIndex, dataLen, want)
	}
	return nil
}
