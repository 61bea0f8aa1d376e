// Package news holds the dated activity log and its list/detail browser.
package news

import (
	"errors"
	"fmt"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

// PageSize is how many more items "load more" reveals.
const PageSize = 4

const dateLayout = "2006-01-02"

var (
	// ErrDuplicateDate is returned when two items share the same date key.
	ErrDuplicateDate = errors.New("news: duplicate date")
	// ErrBadDate is returned for dates not in zero-padded YYYY-MM-DD form.
	ErrBadDate = errors.New("news: malformed date")
)

// Item is a single news entry. Date is the unique key.
type Item struct {
	Date    string `yaml:"date"`
	TitleJA string `yaml:"title_ja"`
	TitleEN string `yaml:"title_en"`
	PlaceJA string `yaml:"place_ja"`
	PlaceEN string `yaml:"place_en"`
	BodyJA  string `yaml:"body_ja"`
	BodyEN  string `yaml:"body_en"`
}

// Title returns the localized title.
func (it Item) Title(l lang.Lang) string {
	if l == lang.EN {
		return it.TitleEN
	}
	return it.TitleJA
}

// Place returns the localized place, falling back to the other language.
func (it Item) Place(l lang.Lang) string {
	if l == lang.EN && it.PlaceEN != "" {
		return it.PlaceEN
	}
	if it.PlaceJA != "" {
		return it.PlaceJA
	}
	return it.PlaceEN
}

// Body returns the localized body source.
func (it Item) Body(l lang.Lang) string {
	if l == lang.EN {
		return it.BodyEN
	}
	return it.BodyJA
}

// Time parses the date key.
func (it Item) Time() (time.Time, error) {
	return time.Parse(dateLayout, it.Date)
}

// Sorted returns a copy of items ordered by date, newest first. Ties keep
// their input order. The comparison is lexicographic, which matches
// chronological order for zero-padded ISO dates.
func Sorted(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Find returns the item with the given date.
func Find(items []Item, date string) (Item, bool) {
	for _, it := range items {
		if it.Date == date {
			return it, true
		}
	}
	return Item{}, false
}

// Validate checks that every date is well formed and unique.
func Validate(items []Item) error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, it := range items {
		t, err := it.Time()
		if err != nil || t.Format(dateLayout) != it.Date {
			return fmt.Errorf("%w: %q", ErrBadDate, it.Date)
		}
		if !seen.Add(it.Date) {
			return fmt.Errorf("%w: %s", ErrDuplicateDate, it.Date)
		}
	}
	return nil
}
