package clipboard

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// itemFromText interprets clipboard text. Text whose every non-empty line
// is a file:// URI is a file list; anything else is plain text. Empty text
// is no item at all.
func itemFromText(s string) *domain.Item {
	if s == "" {
		return nil
	}
	var uris []string
	for _, line := range strings.Split(strings.TrimRight(s, "\r\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "file://") {
			item := domain.TextItem(s)
			return &item
		}
		uris = append(uris, line)
	}
	if len(uris) == 0 {
		item := domain.TextItem(s)
		return &item
	}
	item := domain.FilesItem(uris...)
	return &item
}

// textFromItem renders an item for a text-only clipboard. Files become one
// file:// URI per line.
func textFromItem(item domain.Item) (string, error) {
	switch item.Kind {
	case domain.KindText:
		return item.Text, nil
	case domain.KindFiles:
		lines := make([]string, len(item.Files))
		for i, p := range item.Files {
			lines[i] = fileURI(p)
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", domain.ErrUnsupported.WithDetails(item.Kind.String())
	}
}

func fileURI(p string) string {
	if strings.HasPrefix(p, "file://") {
		return p
	}
	slashed := filepath.ToSlash(p)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}
