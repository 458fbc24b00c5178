package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	// Version is the only protocol version this codec speaks.
	Version byte = 1

	// TypeClipboardUpdate is the single message type.
	TypeClipboardUpdate byte = 1

	// headerSize is the fixed part of a message excluding instance_id and payload.
	headerSize = 1 + 1 + 2 + 1 + 8

	// MaxInstanceIDLen is the longest instance id the u16 length prefix can carry.
	MaxInstanceIDLen = math.MaxUint16
)

// ContentType tags the payload of a ClipboardUpdate.
type ContentType byte

const (
	ContentText  ContentType = 1
	ContentImage ContentType = 2
	ContentFiles ContentType = 3
)

// Valid reports whether c is one of the known content types.
func (c ContentType) Valid() bool {
	return c >= ContentText && c <= ContentFiles
}

// String returns the lowercase name used in logs and metric labels.
func (c ContentType) String() string {
	switch c {
	case ContentText:
		return "text"
	case ContentImage:
		return "image"
	case ContentFiles:
		return "files"
	default:
		return fmt.Sprintf("unknown(%d)", byte(c))
	}
}

// Message is a ClipboardUpdate.
//
// PayloadSize is informational. DecodeMessage takes every byte after the
// header as the payload whatever PayloadSize says.
type Message struct {
	InstanceID  string
	ContentType ContentType
	PayloadSize uint64
	Payload     []byte
}

// NewClipboardUpdate builds a message with PayloadSize set from payload.
func NewClipboardUpdate(instanceID string, ct ContentType, payload []byte) *Message {
	return &Message{
		InstanceID:  instanceID,
		ContentType: ct,
		PayloadSize: uint64(len(payload)),
		Payload:     payload,
	}
}

// SizeMismatch reports whether PayloadSize disagrees with the payload length.
func (m *Message) SizeMismatch() bool {
	return m.PayloadSize != uint64(len(m.Payload))
}

// EncodeMessage serializes m.
func EncodeMessage(m *Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("protocol: message is nil")
	}
	if len(m.InstanceID) > MaxInstanceIDLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidInstanceID, len(m.InstanceID), MaxInstanceIDLen)
	}
	if !utf8.ValidString(m.InstanceID) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidInstanceID)
	}
	if !m.ContentType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContentType, byte(m.ContentType))
	}

	out := make([]byte, 0, headerSize+len(m.InstanceID)+len(m.Payload))
	out = append(out, Version, TypeClipboardUpdate)
	out = binary.BigEndian.AppendUint16(out, uint16(len(m.InstanceID)))
	out = append(out, m.InstanceID...)
	out = append(out, byte(m.ContentType))
	out = binary.BigEndian.AppendUint64(out, m.PayloadSize)
	out = append(out, m.Payload...)
	return out, nil
}

// DecodeMessage parses a plaintext message. The returned payload aliases data.
func DecodeMessage(data []byte) (*Message, error) {
	if len(data) < 2 {
		return nil, ErrTruncated
	}
	if data[0] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	if data[1] != TypeClipboardUpdate {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, data[1])
	}
	rest := data[2:]

	if len(rest) < 2 {
		return nil, ErrTruncated
	}
	idLen := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) < idLen {
		return nil, ErrTruncated
	}
	id := rest[:idLen]
	if !utf8.Valid(id) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidInstanceID)
	}
	rest = rest[idLen:]

	if len(rest) < 1+8 {
		return nil, ErrTruncated
	}
	ct := ContentType(rest[0])
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContentType, rest[0])
	}
	size := binary.BigEndian.Uint64(rest[1:9])

	return &Message{
		InstanceID:  string(id),
		ContentType: ct,
		PayloadSize: size,
		Payload:     rest[9:],
	}, nil
}
