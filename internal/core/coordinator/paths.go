package coordinator

import (
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const fileURIPrefix = "file://"

// resolvePath turns a clipboard file reference into a filesystem path.
// A file:// prefix is stripped and the rest percent-decoded; input that
// does not decode cleanly is used verbatim.
func resolvePath(raw string) string {
	p, isURI := strings.CutPrefix(raw, fileURIPrefix)
	if !isURI {
		return raw
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	// file:///C:/x arrives as /C:/x on Windows.
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

var errUnsafeName = errors.New("file name has no usable base name")

// safeName reduces a peer-supplied file name to its last element so the
// result always stays inside the download directory.
func safeName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	switch base {
	case "", ".", "..", "/":
		return "", errUnsafeName
	}
	return base, nil
}
