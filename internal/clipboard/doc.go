// Package clipboard provides the local clipboard backends used by clipmesh.
//
//   - memory: in-process clipboard for tests and headless runs
//   - system: the desktop clipboard through github.com/atotto/clipboard
//     (xclip, xsel, wl-clipboard, pbcopy or Win32), polled for changes
//   - file: a text file standing in for the clipboard, watched with fsnotify
//
// Open picks one at startup. Every backend reports changes as content-free
// signals; the reader is expected to call Read after each one.
package clipboard
