package handlers

import (
	"html/template"

	"github.com/masahiro-koseki/masahiro-site/internal/format"
	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/news"
)

// NewsDetailData is the detail half of the news browser.
type NewsDetailData struct {
	Date     string
	Label    string
	Title    string
	Place    string
	Body     template.HTML
	BackHref string
}

// BuildNewsDetail maps the selected entry; ok is false in the list view.
func BuildNewsDetail(b news.Browser, body template.HTML, l lang.Lang) (NewsDetailData, bool) {
	it, ok := b.Current()
	if !ok {
		return NewsDetailData{}, false
	}
	return NewsDetailData{
		Date:     it.Date,
		Label:    format.FmtISODate(it.Date, l),
		Title:    it.Title(l),
		Place:    it.Place(l),
		Body:     body,
		BackHref: NewsListHref(b.Back().Limit),
	}, true
}

// LightboxData is the enlarged-image overlay.
type LightboxData struct {
	Title     string
	Src       string
	Alt       string
	Caption   string
	Position  string
	Index     int
	Total     int
	PrevHref  string
	NextHref  string
	CloseHref string
	// Keys maps a keyboard key to the URL of the state it leads to.
	Keys []KeyLink
}

// KeyLink is a rendered key binding.
type KeyLink struct {
	Key  string
	Href string
}

// Linker addresses lightbox states of one category.
type Linker struct {
	// At returns the URL of image i.
	At func(i int) string
	// Closed is where the lightbox goes when it closes.
	Closed string
}

// BuildLightbox renders v. ok is false when the viewer is closed.
func BuildLightbox(v *gallery.Viewer, title string, links Linker, l lang.Lang) (LightboxData, bool) {
	im, ok := v.Current()
	if !ok {
		return LightboxData{}, false
	}
	prev, next := v.Lightbox, v.Lightbox
	prev.Prev()
	next.Next()
	data := LightboxData{
		Title:     title,
		Src:       im.Src,
		Alt:       im.Alt,
		Caption:   im.Caption(l),
		Position:  format.FmtPosition(v.Index, v.Total()),
		Index:     v.Index,
		Total:     v.Total(),
		PrevHref:  links.At(prev.Index),
		NextHref:  links.At(next.Index),
		CloseHref: links.Closed,
	}
	if data.Alt == "" {
		data.Alt = "image"
	}
	for _, b := range v.KeyBindings() {
		href := links.Closed
		if b.Result.Open {
			href = links.At(b.Result.Index)
		}
		data.Keys = append(data.Keys, KeyLink{Key: b.Key, Href: href})
	}
	return data, true
}

// PreviewData is the photo book preview page.
type PreviewData struct {
	Spreads []SpreadView
}

// SpreadView is one preview card.
type SpreadView struct {
	Key     string
	Src     string
	Alt     string
	Caption string
	Href    string
	// Lead marks the first row (cover, preface, contents).
	Lead bool
}

// BuildPreview lists the spreads of c.
func BuildPreview(c gallery.Category, l lang.Lang) PreviewData {
	out := PreviewData{}
	for i, im := range c.Images {
		out.Spreads = append(out.Spreads, SpreadView{
			Key:     im.Key,
			Src:     im.Src,
			Alt:     im.Alt,
			Caption: im.Caption(l),
			Href:    PreviewHref(i),
			Lead:    i < 3,
		})
	}
	return out
}
