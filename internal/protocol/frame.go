package protocol

import (
	"encoding/binary"
	"math"
)

// FrameHeaderSize is the length of the u32 prefix.
const FrameHeaderSize = 4

// EncodeFrame prefixes body with its length as a big-endian u32.
func EncodeFrame(body []byte) ([]byte, error) {
	if uint64(len(body)) > math.MaxUint32 {
		return nil, ErrFrameTooLarge
	}
	out := make([]byte, FrameHeaderSize, FrameHeaderSize+len(body))
	binary.BigEndian.PutUint32(out, uint32(len(body)))
	return append(out, body...), nil
}

// TryDecodeFrame extracts one frame from the front of buf.
//
// ok is false when buf holds fewer than 4 bytes or less body than the
// prefix declares; the caller should buffer more and retry. Any declared
// length up to math.MaxUint32 is handled. Callers must bound the length
// with their own ceiling before reading that much from a socket.
func TryDecodeFrame(buf []byte) (consumed int, body []byte, ok bool) {
	if len(buf) < FrameHeaderSize {
		return 0, nil, false
	}
	n := uint64(binary.BigEndian.Uint32(buf))
	if uint64(len(buf)-FrameHeaderSize) < n {
		return 0, nil, false
	}
	end := FrameHeaderSize + int(n)
	return end, buf[FrameHeaderSize:end], true
}

// FrameLength decodes a u32 length prefix.
func FrameLength(header [FrameHeaderSize]byte) uint32 {
	return binary.BigEndian.Uint32(header[:])
}
