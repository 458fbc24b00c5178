package coordinator

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// missingSize stands in for the size of a file that cannot be stat'ed.
const missingSize = ^uint64(0)

// fingerprint hashes an item for dedup and echo detection. It is not a
// security boundary.
//
// Text and image hash their bytes. Files hash only (base name, size) pairs
// so a file referenced by its source path on one host and by its download
// path on another yields the same value.
func fingerprint(item domain.Item) uint64 {
	h := murmur3.New64()
	_, _ = h.Write([]byte{byte(item.Kind)})

	switch item.Kind {
	case domain.KindText:
		_, _ = h.Write([]byte(item.Text))
	case domain.KindImage:
		_, _ = h.Write(item.Image)
	case domain.KindFiles:
		var buf []byte
		for _, raw := range item.Files {
			p := resolvePath(raw)
			size := missingSize
			if info, err := os.Stat(p); err == nil {
				size = uint64(info.Size())
			}
			buf = buf[:0]
			buf = binary.BigEndian.AppendUint32(buf, uint32(len(filepath.Base(p))))
			buf = append(buf, filepath.Base(p)...)
			buf = binary.BigEndian.AppendUint64(buf, size)
			_, _ = h.Write(buf)
		}
	}
	return h.Sum64()
}
