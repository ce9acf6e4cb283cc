// Package packet encodes and decodes the datagrams that carry one chunk of a
// plog message.
//
// A message larger than the configured chunk size is split by the client into
// consecutive chunks. Every chunk travels in its own packet, and every packet
// repeats the message metadata so a receiver can place it without looking at
// any other packet.
//
// # Wire Layout
//
// All integers are big-endian. The header is 16 bytes:
//
//	offset size field
//	     0    1 version (0x00)
//	     1    1 type (0x01, multipart message)
//	     2    2 chunk count
//	     4    2 chunk index
//	     6    2 chunk size
//	     8    4 message id
//	    12    4 message length
//	    16    n chunk data
//
// # Usage
//
//	b, err := packet.Encode(packet.Header{
//	    MessageID:   7,
//	    TotalLength: len(msg),
//	    ChunkSize:   64000,
//	    ChunkCount:  1,
//	    ChunkIndex:  0,
//	}, msg)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package packet
