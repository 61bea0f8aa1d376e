// Package gallery models the portfolio categories and the lightbox viewer.
package gallery

import "github.com/masahiro-koseki/masahiro-site/internal/lang"

// Image is one entry of a category. Source, alt text and captions live on
// the same value so an index is valid for all of them at once.
type Image struct {
	Key      string            `yaml:"key"`
	Src      string            `yaml:"src"`
	Alt      string            `yaml:"alt"`
	Captions map[string]string `yaml:"captions"`
}

// Caption returns the caption for l, or an empty string.
func (im Image) Caption(l lang.Lang) string {
	return im.Captions[string(l)]
}

// Category is an ordered set of images shown together in the lightbox.
type Category struct {
	Key    string            `yaml:"key"`
	Names  map[string]string `yaml:"names"`
	Notes  map[string]string `yaml:"notes"`
	Thumb  string            `yaml:"thumb"`
	Alt    string            `yaml:"thumb_alt"`
	Images []Image           `yaml:"images"`
}

// Name returns the localized category name.
func (c Category) Name(l lang.Lang) string { return c.Names[string(l)] }

// Note returns the localized category note.
func (c Category) Note(l lang.Lang) string { return c.Notes[string(l)] }

// Catalog is the ordered list of categories.
type Catalog []Category

// Len returns the image count of category c, or 0 when c is out of range.
func (cat Catalog) Len(c int) int {
	if c < 0 || c >= len(cat) {
		return 0
	}
	return len(cat[c].Images)
}

// Image returns image i of category c.
func (cat Catalog) Image(c, i int) (Image, bool) {
	if i < 0 || i >= cat.Len(c) {
		return Image{}, false
	}
	return cat[c].Images[i], true
}

// IndexOf returns the position of the category with key, or -1.
func (cat Catalog) IndexOf(key string) int {
	for i, c := range cat {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Wrap maps i into [0, n) with wraparound. n must be positive.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Clamp limits i to [0, n-1]. n must be positive.
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
