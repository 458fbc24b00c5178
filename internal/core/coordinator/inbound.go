package coordinator

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
	"github.com/yndnr/clipmesh-go/internal/protocol"
)

// decodeItem maps an inbound message to a clipboard item. Files are written
// to the download directory, replacing any file of the same name.
func (c *Coordinator) decodeItem(msg *protocol.Message) (domain.Item, error) {
	switch msg.ContentType {
	case protocol.ContentText:
		if !utf8.Valid(msg.Payload) {
			return domain.Item{}, domain.ErrPayloadDecode.WithDetails("text payload is not valid UTF-8")
		}
		return domain.TextItem(string(msg.Payload)), nil
	case protocol.ContentImage:
		return domain.ImageItem(msg.Payload), nil
	case protocol.ContentFiles:
		return c.materialize(msg.Payload)
	default:
		return domain.Item{}, domain.ErrPayloadDecode.WithDetails(fmt.Sprintf("content type %d", byte(msg.ContentType)))
	}
}

func (c *Coordinator) materialize(payload []byte) (domain.Item, error) {
	entries, err := protocol.DecodeFileList(payload)
	if err != nil {
		return domain.Item{}, domain.ErrPayloadDecode.Wrap(err)
	}
	if len(entries) == 0 {
		return domain.Item{}, domain.ErrPayloadDecode.WithDetails("empty file list")
	}

	// Validate every name before touching the filesystem.
	names := make([]string, len(entries))
	for i, e := range entries {
		name, err := safeName(e.Name)
		if err != nil {
			return domain.Item{}, domain.ErrPayloadDecode.WithDetails(fmt.Sprintf("file name %q", e.Name)).Wrap(err)
		}
		names[i] = name
	}

	dir, err := filepath.Abs(c.cfg.DownloadDir)
	if err != nil {
		return domain.Item{}, domain.ErrFileMaterialize.WithDetails(c.cfg.DownloadDir).Wrap(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Item{}, domain.ErrFileMaterialize.WithDetails(dir).Wrap(err)
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		p := filepath.Join(dir, names[i])
		if err := os.WriteFile(p, e.Content, 0o644); err != nil {
			return domain.Item{}, domain.ErrFileMaterialize.WithDetails(p).Wrap(err)
		}
		c.logger.Debug("materialized file", "path", p, "bytes", len(e.Content))
		paths[i] = p
	}
	return domain.FilesItem(paths...), nil
}
