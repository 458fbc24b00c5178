package transport

import "errors"

var (
	ErrFrameTooLarge = errors.New("transport: frame too large")
	ErrFrameTooShort = errors.New("transport: frame body shorter than nonce")
	ErrReadTimeout   = errors.New("transport: read timeout")
	ErrDecryptFailed = errors.New("transport: decrypt failed")
	ErrDecode        = errors.New("transport: decode failed")
	ErrRateLimited   = errors.New("transport: rate limited")
)
