package domain

import "fmt"

// Kind tags the variant held by an Item.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindImage
	KindFiles
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindFiles:
		return "files"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Item is a clipboard value. Exactly one of Text, Image or Files is
// meaningful, selected by Kind.
type Item struct {
	Kind  Kind
	Text  string
	Image []byte   // encoded image, typically PNG
	Files []string // paths, possibly file:// URIs
}

// TextItem returns a text clipboard value.
func TextItem(s string) Item {
	return Item{Kind: KindText, Text: s}
}

// ImageItem returns an image clipboard value.
func ImageItem(b []byte) Item {
	return Item{Kind: KindImage, Image: b}
}

// FilesItem returns a file-list clipboard value.
func FilesItem(paths ...string) Item {
	return Item{Kind: KindFiles, Files: paths}
}

// Equal reports whether two items hold the same value.
func (i Item) Equal(o Item) bool {
	if i.Kind != o.Kind {
		return false
	}
	switch i.Kind {
	case KindText:
		return i.Text == o.Text
	case KindImage:
		return string(i.Image) == string(o.Image)
	case KindFiles:
		if len(i.Files) != len(o.Files) {
			return false
		}
		for n := range i.Files {
			if i.Files[n] != o.Files[n] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String returns a short description suitable for logs. Content is not included.
func (i Item) String() string {
	switch i.Kind {
	case KindText:
		return fmt.Sprintf("text(%d bytes)", len(i.Text))
	case KindImage:
		return fmt.Sprintf("image(%d bytes)", len(i.Image))
	case KindFiles:
		return fmt.Sprintf("files(%d)", len(i.Files))
	default:
		return i.Kind.String()
	}
}
