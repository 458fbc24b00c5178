package clipboard

import (
	"errors"
	"testing"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

func TestItemFromText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *domain.Item
	}{
		{"empty", "", nil},
		{"plain", "hello", ptr(domain.TextItem("hello"))},
		{"multiline", "a\nb", ptr(domain.TextItem("a\nb"))},
		{"blank lines", "\n\n", ptr(domain.TextItem("\n\n"))},
		{"single uri", "file:///tmp/a.txt", ptr(domain.FilesItem("file:///tmp/a.txt"))},
		{"uri list", "file:///a\r\nfile:///b\n", ptr(domain.FilesItem("file:///a", "file:///b"))},
		{"mixed", "file:///a\nnotes", ptr(domain.TextItem("file:///a\nnotes"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemFromText(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("itemFromText(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("itemFromText(%q) = %+v, want %+v", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestTextFromItem(t *testing.T) {
	got, err := textFromItem(domain.FilesItem("/tmp/a b.txt", "file:///already"))
	if err != nil {
		t.Fatalf("textFromItem() error = %v", err)
	}
	want := "file:///tmp/a%20b.txt\nfile:///already"
	if got != want {
		t.Errorf("textFromItem() = %q, want %q", got, want)
	}

	if got, _ := textFromItem(domain.TextItem("x")); got != "x" {
		t.Errorf("textFromItem(text) = %q, want x", got)
	}

	if _, err := textFromItem(domain.ImageItem([]byte{1})); !errors.Is(err, domain.ErrUnsupported) {
		t.Errorf("textFromItem(image) error = %v, want ErrUnsupported", err)
	}
}

func TestFilesRoundTripThroughText(t *testing.T) {
	paths := []string{"/home/u/Downloads/clipmesh/report 100%.pdf"}
	text, err := textFromItem(domain.FilesItem(paths...))
	if err != nil {
		t.Fatalf("textFromItem() error = %v", err)
	}
	item := itemFromText(text)
	if item == nil || item.Kind != domain.KindFiles || len(item.Files) != 1 {
		t.Fatalf("itemFromText(%q) = %+v, want one file", text, item)
	}
}

func ptr(i domain.Item) *domain.Item { return &i }
