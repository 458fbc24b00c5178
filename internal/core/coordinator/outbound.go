package coordinator

import (
	"os"
	"path/filepath"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
	"github.com/yndnr/clipmesh-go/internal/protocol"
)

// buildMessage maps a clipboard item to an outbound message. A nil message
// with a nil error means there is nothing to send.
func (c *Coordinator) buildMessage(item domain.Item) (*protocol.Message, error) {
	switch item.Kind {
	case domain.KindText:
		return protocol.NewClipboardUpdate(c.cfg.InstanceID, protocol.ContentText, []byte(item.Text)), nil
	case domain.KindImage:
		return protocol.NewClipboardUpdate(c.cfg.InstanceID, protocol.ContentImage, item.Image), nil
	case domain.KindFiles:
		payload, err := c.buildFilePayload(item.Files)
		if err != nil || payload == nil {
			return nil, err
		}
		return protocol.NewClipboardUpdate(c.cfg.InstanceID, protocol.ContentFiles, payload), nil
	default:
		c.logger.Debug("ignoring clipboard item of unknown kind", "kind", item.Kind.String())
		return nil, nil
	}
}

// buildFilePayload reads every regular file in paths. Entries that cannot be
// stat'ed or are not regular files are skipped. If any remaining file is
// larger than MaxFileSize nothing is sent at all.
func (c *Coordinator) buildFilePayload(paths []string) ([]byte, error) {
	var files []string
	for _, raw := range paths {
		p := resolvePath(raw)
		info, err := os.Stat(p)
		if err != nil {
			c.logger.Warn("skipping unreadable file", "path", p, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			c.logger.Debug("skipping non-regular file", "path", p, "mode", info.Mode().String())
			continue
		}
		if uint64(info.Size()) > c.cfg.MaxFileSize {
			c.logger.Warn("file exceeds max_file_size, not sending any files",
				"path", p,
				"bytes", info.Size(),
				"max_file_size", c.cfg.MaxFileSize)
			c.metrics.IncFileBatchRejected()
			return nil, nil
		}
		files = append(files, p)
	}
	if len(files) == 0 {
		return nil, nil
	}

	entries := make([]protocol.FileEntry, 0, len(files))
	for _, p := range files {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, domain.ErrFileRead.WithDetails(p).Wrap(err)
		}
		entries = append(entries, protocol.FileEntry{
			Name:    filepath.Base(p),
			Size:    uint64(len(content)),
			Content: content,
		})
	}
	return protocol.EncodeFileList(entries)
}
