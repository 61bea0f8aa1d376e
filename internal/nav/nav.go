// Package nav builds the header navigation and breadcrumbs.
package nav

import (
	"path"
	"strings"
)

// Item is a section of the one-page layout.
type Item struct {
	Anchor   string // element id on the home page
	LabelKey string // i18n key, e.g. "nav.book"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the header navigation, in page order.
var Main = []Item{
	{Anchor: "home", LabelKey: "nav.home"},
	{Anchor: "book", LabelKey: "nav.book"},
	{Anchor: "portfolio", LabelKey: "nav.portfolio"},
	{Anchor: "about", LabelKey: "nav.about"},
	{Anchor: "news", LabelKey: "nav.news"},
	{Anchor: "contact", LabelKey: "nav.contact"},
}

// sections maps secondary pages to the home section they belong to.
var sections = map[string]string{
	"preview":   "book",
	"portfolio": "portfolio",
	"news":      "news",
	"thanks":    "contact",
}

// Build renders navigation items for currentPath. On the home page the
// links are bare anchors; elsewhere they point back to the home page.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	active := sections[topSegment(currentPath)]
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		href := "#" + it.Anchor
		if currentPath != "/" {
			href = "/" + href
		}
		items = append(items, RenderedItem{
			Href:     href,
			LabelKey: it.LabelKey,
			Active:   it.Anchor == active,
		})
	}
	return items
}

// Breadcrumbs builds breadcrumb entries for secondary pages. label names
// the last crumb when it is not a fixed page (a news date, an image).
func Breadcrumbs(currentPath, label string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}
	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	switch parts[0] {
	case "preview":
		crumbs = append(crumbs, Crumb{Href: "/preview", LabelKey: "preview.title", Active: len(parts) == 1})
	case "news":
		crumbs = append(crumbs, Crumb{Href: "/#news", LabelKey: "nav.news"})
	case "portfolio":
		crumbs = append(crumbs, Crumb{Href: "/#portfolio", LabelKey: "nav.portfolio"})
	case "thanks":
		crumbs = append(crumbs, Crumb{Href: "/thanks", LabelKey: "thanks.title", Active: true})
	default:
		crumbs = append(crumbs, Crumb{Href: clean, Label: titleFromSegment(parts[len(parts)-1]), Active: true})
		return crumbs
	}
	if len(parts) > 1 {
		if label == "" {
			label = titleFromSegment(parts[len(parts)-1])
		}
		crumbs = append(crumbs, Crumb{Href: clean, Label: label, Active: true})
	}
	return crumbs
}

func topSegment(p string) string {
	p = strings.TrimPrefix(path.Clean(p), "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
