package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestFileListRoundTrip(t *testing.T) {
	entries := []FileEntry{
		{Name: "a.txt", Size: 3, Content: []byte("abc")},
		{Name: "empty.bin", Size: 0, Content: []byte{}},
		{Name: "报告.pdf", Size: 4, Content: []byte{0, 1, 2, 3}},
	}

	data, err := EncodeFileList(entries)
	if err != nil {
		t.Fatalf("EncodeFileList() error = %v", err)
	}
	got, err := DecodeFileList(data)
	if err != nil {
		t.Fatalf("DecodeFileList() error = %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("DecodeFileList() returned %d entries, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i].Name != entries[i].Name || got[i].Size != entries[i].Size {
			t.Errorf("entry %d = {%q, %d}, want {%q, %d}", i, got[i].Name, got[i].Size, entries[i].Name, entries[i].Size)
		}
		if !bytes.Equal(got[i].Content, entries[i].Content) {
			t.Errorf("entry %d content mismatch", i)
		}
	}
}

func TestEncodeFileList_Deterministic(t *testing.T) {
	entries := []FileEntry{{Name: "x", Size: 1, Content: []byte("x")}}
	a, _ := EncodeFileList(entries)
	b, _ := EncodeFileList(entries)
	if !bytes.Equal(a, b) {
		t.Error("EncodeFileList() is not deterministic")
	}
}

func TestEncodeFileList_Empty(t *testing.T) {
	data, err := EncodeFileList(nil)
	if err != nil {
		t.Fatalf("EncodeFileList(nil) error = %v", err)
	}
	got, err := DecodeFileList(data)
	if err != nil {
		t.Fatalf("DecodeFileList() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DecodeFileList() = %d entries, want 0", len(got))
	}
}

func TestDecodeFileList_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0xff, 0x00, 0x13}},
		{"not an array", []byte{0x63, 'a', 'b', 'c'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFileList(tt.data); !errors.Is(err, ErrInvalidFileList) {
				t.Errorf("DecodeFileList() error = %v, want ErrInvalidFileList", err)
			}
		})
	}
}
