package gallery

// Keyboard keys understood while the lightbox is open.
const (
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

// Lightbox is the enlarged-image state. Transitions are pure with respect
// to the catalog it was opened on.
type Lightbox struct {
	Open     bool
	Category int
	Index    int

	catalog Catalog
}

// Opened returns a lightbox opened on (c, i), or a closed one when the
// category does not exist or has no images.
func Opened(catalog Catalog, c, i int) Lightbox {
	var lb Lightbox
	lb.OpenAt(catalog, c, i)
	return lb
}

// OpenAt opens category c at image i, clamping i into range. An unknown or
// empty category leaves the state untouched.
func (lb *Lightbox) OpenAt(catalog Catalog, c, i int) bool {
	n := catalog.Len(c)
	if n == 0 {
		return false
	}
	lb.catalog = catalog
	lb.Category = c
	lb.Index = Clamp(i, n)
	lb.Open = true
	return true
}

func (lb *Lightbox) count() int { return lb.catalog.Len(lb.Category) }

// Next advances with wraparound. It only needs an active category, not an
// open lightbox.
func (lb *Lightbox) Next() {
	if n := lb.count(); n > 0 {
		lb.Index = Wrap(lb.Index+1, n)
	}
}

// Prev retreats with wraparound.
func (lb *Lightbox) Prev() {
	if n := lb.count(); n > 0 {
		lb.Index = Wrap(lb.Index-1, n)
	}
}

// Close hides the lightbox. The category and index are kept.
func (lb *Lightbox) Close() { lb.Open = false }

// HandleKey applies the keyboard binding for key. It reports whether the
// key was consumed; keys are ignored while closed.
func (lb *Lightbox) HandleKey(key string) bool {
	if !lb.Open {
		return false
	}
	switch key {
	case KeyEscape:
		lb.Close()
	case KeyArrowRight:
		lb.Next()
	case KeyArrowLeft:
		lb.Prev()
	default:
		return false
	}
	return true
}

// Current returns the displayed image.
func (lb Lightbox) Current() (Image, bool) {
	if !lb.Open {
		return Image{}, false
	}
	return lb.catalog.Image(lb.Category, lb.Index)
}

// Total is the image count of the active category.
func (lb Lightbox) Total() int { return lb.count() }

// Binding is the state a key press leads to.
type Binding struct {
	Key    string
	Result Lightbox
}

// KeyBindings lists the outcome of each supported key from the current state.
func (lb Lightbox) KeyBindings() []Binding {
	keys := []string{KeyEscape, KeyArrowRight, KeyArrowLeft}
	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		next := lb
		if next.HandleKey(k) {
			out = append(out, Binding{Key: k, Result: next})
		}
	}
	return out
}
