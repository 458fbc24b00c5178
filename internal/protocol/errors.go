package protocol

import "errors"

var (
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	ErrUnknownType        = errors.New("protocol: unknown message type")
	ErrTruncated          = errors.New("protocol: truncated message")
	ErrUnknownContentType = errors.New("protocol: unknown content type")
	ErrInvalidInstanceID  = errors.New("protocol: invalid instance id")
	ErrFrameTooLarge      = errors.New("protocol: frame body exceeds u32 length")
	ErrInvalidFileList    = errors.New("protocol: invalid file list")
)
