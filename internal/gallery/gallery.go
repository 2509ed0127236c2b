// Package gallery holds the image records shown by the carousel and lightbox
// and the index arithmetic both navigators share.
package gallery

import (
	"errors"
	"fmt"
	"slices"
)

// Image is one gallery entry. Timestamp is Unix milliseconds.
type Image struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

var ErrDuplicateID = errors.New("gallery: duplicate image id")

// Gallery is an ordered, immutable list of images. Order is presentation
// order. A new generation produces a new Gallery rather than editing one.
type Gallery struct {
	images []Image
}

// New copies images into a Gallery. IDs must be unique.
func New(images []Image) (*Gallery, error) {
	seen := make(map[string]struct{}, len(images))
	for _, img := range images {
		if _, ok := seen[img.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, img.ID)
		}
		seen[img.ID] = struct{}{}
	}
	return &Gallery{images: slices.Clone(images)}, nil
}

// Len is safe on a nil Gallery.
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.images)
}

func (g *Gallery) Empty() bool { return g.Len() == 0 }

// At returns the image at position i, or false when i is out of range.
func (g *Gallery) At(i int) (Image, bool) {
	if i < 0 || i >= g.Len() {
		return Image{}, false
	}
	return g.images[i], true
}

// Images returns a copy of the list.
func (g *Gallery) Images() []Image {
	if g == nil {
		return nil
	}
	return slices.Clone(g.images)
}
