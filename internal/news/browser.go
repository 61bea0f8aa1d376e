package news

// View is which half of the master/detail pair is showing.
type View string

const (
	ViewList   View = "list"
	ViewDetail View = "detail"
)

// Browser is the master/detail state of the news section.
type Browser struct {
	View     View
	Selected string
	Limit    int

	items []Item
}

// NewBrowser returns a list view over items showing the first page.
func NewBrowser(items []Item) Browser {
	b := Browser{View: ViewList, items: Sorted(items)}
	b.Limit = b.capLimit(PageSize)
	return b
}

// WithLimit restores a limit carried over from a previous view. Values
// outside [1, total] are clamped, non-positive values reset to one page.
func (b Browser) WithLimit(limit int) Browser {
	if limit <= 0 {
		limit = PageSize
	}
	b.Limit = b.capLimit(limit)
	return b
}

func (b Browser) capLimit(limit int) int {
	if limit > len(b.items) {
		return len(b.items)
	}
	return limit
}

// Total is the number of items.
func (b Browser) Total() int { return len(b.items) }

// Visible returns the newest Limit items.
func (b Browser) Visible() []Item {
	return b.items[:b.capLimit(b.Limit)]
}

// HasMore reports whether LoadMore would reveal more items.
func (b Browser) HasMore() bool { return b.Limit < len(b.items) }

// LoadMore grows the limit by one page, capped at the total.
func (b Browser) LoadMore() Browser {
	b.Limit = b.capLimit(b.Limit + PageSize)
	return b
}

// Select switches to the detail view of date. Unknown dates leave the
// browser unchanged.
func (b Browser) Select(date string) Browser {
	if _, ok := Find(b.items, date); !ok {
		return b
	}
	b.View = ViewDetail
	b.Selected = date
	return b
}

// Back returns to the list view with the limit unchanged.
func (b Browser) Back() Browser {
	b.View = ViewList
	b.Selected = ""
	return b
}

// Current returns the selected item in the detail view.
func (b Browser) Current() (Item, bool) {
	if b.View != ViewDetail {
		return Item{}, false
	}
	return Find(b.items, b.Selected)
}
