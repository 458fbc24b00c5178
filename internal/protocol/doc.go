// Package protocol implements the clipmesh wire format.
//
// A plaintext message is laid out as:
//
//	version(u8=1) type(u8=1) id_len(u16 BE) instance_id(UTF-8)
//	content_type(u8) payload_size(u64 BE) payload(remaining bytes)
//
// On the wire each encrypted message travels inside a frame: a u32
// big-endian body length followed by the body. The codec here performs
// no I/O and holds no state; encryption is layered on by the transport
// package.
package protocol
