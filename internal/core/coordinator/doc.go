// Package coordinator decides what to broadcast and what to apply locally.
//
// A single goroutine (Run) merges two streams: content-free change signals
// from the clipboard watcher and decoded messages from the transport
// listener. All dedup and echo-suppression state lives on that goroutine,
// so none of it needs locking.
//
// Local change: read the clipboard, fingerprint it, discard it if it is
// the echo of a remote write or identical to the last broadcast, otherwise
// build a message and broadcast it.
//
// Inbound message: drop it if it carries our own instance id, otherwise
// decode it into an item (materializing files), arm the suppression window
// with the item's fingerprint and write it to the clipboard.
package coordinator
