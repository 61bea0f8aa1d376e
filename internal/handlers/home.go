package handlers

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/format"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/news"
)

// HomeData is the view model for the one-page home layout.
type HomeData struct {
	Hero       HeroView
	Book       BookView
	Highlights []HighlightView
	Categories []CategoryView
	About      AboutView
	News       NewsListView
	Contact    ContactView
}

// HeroView is the current banner frame with its neighbours.
type HeroView struct {
	Src      string
	Alt      string
	Position string
	Index    int
	Total    int
	PrevHref string
	NextHref string
	// Frames lists every frame for client-side rotation.
	Frames []content.HeroImage
}

// BookView is the photo book section.
type BookView struct {
	Cover       string
	CoverAlt    string
	Specs       []string
	StoreHref   string
	PreviewHref string
}

// HighlightView is a seasonal teaser.
type HighlightView struct {
	Key   string
	Src   string
	Alt   string
	Title string
	Desc  string
	Href  string
}

// CategoryView is a portfolio card.
type CategoryView struct {
	Key   string
	Name  string
	Note  string
	Thumb string
	Alt   string
	Count int
	Href  string
}

// AboutView is the biography section.
type AboutView struct {
	Title    string
	Body     template.HTML
	Location string
	Focus    string
	Timeline []TimelineRow
	Features []string
}

// TimelineRow is one biography line.
type TimelineRow struct {
	Year string
	Text string
}

// NewsListView is the master half of the news browser.
type NewsListView struct {
	Rows     []NewsRow
	Total    int
	Limit    int
	HasMore  bool
	MoreHref string
}

// NewsRow is one list entry.
type NewsRow struct {
	Date  string
	Label string
	Title string
	Place string
	Href  string
}

// HomeInput gathers what BuildHomeData needs.
type HomeInput struct {
	Site    content.Site
	About   content.Page
	Browser news.Browser
	Hero    int
	Contact ContactView
}

// BuildHomeData constructs the view model for the landing page in l.
func BuildHomeData(in HomeInput, l lang.Lang) HomeData {
	return HomeData{
		Hero:       buildHero(in.Site.Hero, in.Hero, in.Browser.Limit),
		Book:       buildBook(in.Site.Book, l),
		Highlights: buildHighlights(in.Site.Highlights, l),
		Categories: buildCategories(in.Site, l),
		About:      buildAbout(in.Site.About, in.About, l),
		News:       BuildNewsList(in.Browser, l),
		Contact:    in.Contact,
	}
}

func buildHero(h content.Hero, i, newsLimit int) HeroView {
	frame, idx := h.At(i)
	n := len(h.Images)
	view := HeroView{
		Src:      frame.Src,
		Alt:      frame.Alt,
		Position: frame.Position,
		Index:    idx,
		Total:    n,
		Frames:   h.Images,
	}
	if n > 0 {
		_, prev := h.At(idx - 1)
		_, next := h.At(idx + 1)
		view.PrevHref = homeHref(prev, newsLimit, "home")
		view.NextHref = homeHref(next, newsLimit, "home")
	}
	return view
}

func buildBook(b content.Book, l lang.Lang) BookView {
	return BookView{
		Cover:       b.Cover,
		CoverAlt:    b.CoverAlt,
		Specs:       b.SpecsIn(l),
		StoreHref:   b.Stores.In(l),
		PreviewHref: "/preview",
	}
}

func buildHighlights(hs []content.Highlight, l lang.Lang) []HighlightView {
	out := make([]HighlightView, 0, len(hs))
	for _, h := range hs {
		out = append(out, HighlightView{
			Key:   h.Key,
			Src:   h.Src,
			Alt:   h.Alt,
			Title: h.Titles.In(l),
			Desc:  h.Descs.In(l),
			Href:  PreviewHref(h.Preview),
		})
	}
	return out
}

func buildCategories(s content.Site, l lang.Lang) []CategoryView {
	out := make([]CategoryView, 0, len(s.Gallery))
	for _, c := range s.Gallery {
		out = append(out, CategoryView{
			Key:   c.Key,
			Name:  c.Name(l),
			Note:  c.Note(l),
			Thumb: c.Thumb,
			Alt:   c.Alt,
			Count: len(c.Images),
			Href:  PortfolioHref(c.Key, 0),
		})
	}
	return out
}

func buildAbout(a content.About, page content.Page, l lang.Lang) AboutView {
	view := AboutView{
		Title:    page.Title,
		Body:     page.Body,
		Location: a.Location.In(l),
		Focus:    a.Focus.In(l),
	}
	for _, e := range a.Timeline {
		view.Timeline = append(view.Timeline, TimelineRow{Year: e.Year, Text: e.Text.In(l)})
	}
	for _, f := range a.Features {
		view.Features = append(view.Features, f.In(l))
	}
	return view
}

// BuildNewsList maps the list half of the browser.
func BuildNewsList(b news.Browser, l lang.Lang) NewsListView {
	view := NewsListView{Total: b.Total(), Limit: b.Limit, HasMore: b.HasMore()}
	for _, it := range b.Visible() {
		view.Rows = append(view.Rows, NewsRow{
			Date:  it.Date,
			Label: format.FmtISODate(it.Date, l),
			Title: it.Title(l),
			Place: it.Place(l),
			Href:  NewsDetailHref(it.Date, b.Limit),
		})
	}
	if view.HasMore {
		view.MoreHref = NewsListHref(b.LoadMore().Limit)
	}
	return view
}

// PortfolioHref addresses image i of a portfolio category.
func PortfolioHref(category string, i int) string {
	return "/portfolio/" + url.PathEscape(category) + "?i=" + strconv.Itoa(i)
}

// PreviewHref addresses spread i of the book preview.
func PreviewHref(i int) string { return "/preview/" + strconv.Itoa(i) }

// NewsListHref returns to the news list showing limit items.
func NewsListHref(limit int) string {
	if limit <= news.PageSize {
		return "/#news"
	}
	return fmt.Sprintf("/?news=%d#news", limit)
}

// NewsDetailHref opens the entry for date, remembering the list limit.
func NewsDetailHref(date string, limit int) string {
	if limit <= news.PageSize {
		return "/news/" + url.PathEscape(date)
	}
	return fmt.Sprintf("/news/%s?limit=%d", url.PathEscape(date), limit)
}

func homeHref(hero, newsLimit int, anchor string) string {
	q := url.Values{}
	if hero > 0 {
		q.Set("hero", strconv.Itoa(hero))
	}
	if newsLimit > news.PageSize {
		q.Set("news", strconv.Itoa(newsLimit))
	}
	href := "/"
	if len(q) > 0 {
		href += "?" + q.Encode()
	}
	return href + "#" + anchor
}
