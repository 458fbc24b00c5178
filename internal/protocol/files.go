package protocol

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// FileEntry is one file carried in a Files payload.
type FileEntry struct {
	Name    string `cbor:"name"`
	Size    uint64 `cbor:"size"`
	Content []byte `cbor:"content"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("protocol: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("protocol: CBOR decoder initialization failed: " + err.Error())
	}
}

// EncodeFileList serializes entries as a deterministic CBOR array.
func EncodeFileList(entries []FileEntry) ([]byte, error) {
	if entries == nil {
		entries = []FileEntry{}
	}
	data, err := encMode.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode file list: %w", err)
	}
	return data, nil
}

// DecodeFileList parses a Files payload.
func DecodeFileList(data []byte) ([]FileEntry, error) {
	var entries []FileEntry
	if err := decMode.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileList, err)
	}
	return entries, nil
}
