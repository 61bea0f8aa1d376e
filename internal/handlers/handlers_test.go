package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/news"
)

func newsItems(n int) []news.Item {
	items := make([]news.Item, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, news.Item{
			Date:    fmt.Sprintf("2025-01-%02d", i),
			TitleJA: fmt.Sprintf("お知らせ %d", i),
			TitleEN: fmt.Sprintf("Entry %d", i),
		})
	}
	return items
}

func TestBuildNewsListFirstPage(t *testing.T) {
	view := BuildNewsList(news.NewBrowser(newsItems(9)), lang.EN)
	require.Len(t, view.Rows, 4)
	require.Equal(t, "2025-01-09", view.Rows[0].Date)
	require.Equal(t, "Jan 9, 2025", view.Rows[0].Label)
	require.Equal(t, "/news/2025-01-09", view.Rows[0].Href)
	require.True(t, view.HasMore)
	require.Equal(t, "/?news=8#news", view.MoreHref)
}

func TestBuildNewsListLastPage(t *testing.T) {
	b := news.NewBrowser(newsItems(9)).LoadMore().LoadMore()
	view := BuildNewsList(b, lang.JA)
	require.Len(t, view.Rows, 9)
	require.False(t, view.HasMore)
	require.Empty(t, view.MoreHref)
	require.Equal(t, "/news/2025-01-01?limit=9", view.Rows[8].Href)
	require.Equal(t, "2025.01.01", view.Rows[8].Label)
}

func TestBuildNewsDetailBackKeepsLimit(t *testing.T) {
	b := news.NewBrowser(newsItems(9)).LoadMore().Select("2025-01-02")
	detail, ok := BuildNewsDetail(b, "<p>body</p>", lang.JA)
	require.True(t, ok)
	require.Equal(t, "お知らせ 2", detail.Title)
	require.Equal(t, "/?news=8#news", detail.BackHref)

	_, ok = BuildNewsDetail(b.Back(), "", lang.JA)
	require.False(t, ok)
}

func testCatalog() gallery.Catalog {
	return gallery.Catalog{{
		Key:   "alpine",
		Names: map[string]string{"ja": "山岳・夜明け", "en": "Alpine / Dawn"},
		Images: []gallery.Image{
			{Src: "/images/a0.webp", Alt: "a0", Captions: map[string]string{"en": "Dawn"}},
			{Src: "/images/a1.webp"},
			{Src: "/images/a2.webp", Alt: "a2"},
		},
	}}
}

func TestBuildLightboxWrapsLinks(t *testing.T) {
	v := gallery.NewViewer(&gallery.ScrollLock{})
	require.True(t, v.Show(testCatalog(), 0, 0))
	defer v.Unmount()

	links := Linker{At: func(i int) string { return PortfolioHref("alpine", i) }, Closed: "/#portfolio"}
	data, ok := BuildLightbox(v, "Alpine / Dawn", links, lang.EN)
	require.True(t, ok)
	require.Equal(t, "/portfolio/alpine?i=2", data.PrevHref)
	require.Equal(t, "/portfolio/alpine?i=1", data.NextHref)
	require.Equal(t, "1 / 3", data.Position)
	require.Equal(t, "Dawn", data.Caption)

	want := []KeyLink{
		{Key: gallery.KeyEscape, Href: "/#portfolio"},
		{Key: gallery.KeyArrowRight, Href: "/portfolio/alpine?i=1"},
		{Key: gallery.KeyArrowLeft, Href: "/portfolio/alpine?i=2"},
	}
	if diff := cmp.Diff(want, data.Keys); diff != "" {
		t.Fatalf("key bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLightboxFallsBackAlt(t *testing.T) {
	v := gallery.NewViewer(nil)
	require.True(t, v.Show(testCatalog(), 0, 1))
	data, ok := BuildLightbox(v, "", Linker{At: PreviewHref, Closed: "/preview"}, lang.JA)
	require.True(t, ok)
	require.Equal(t, "image", data.Alt)

	v.Close()
	_, ok = BuildLightbox(v, "", Linker{At: PreviewHref, Closed: "/preview"}, lang.JA)
	require.False(t, ok)
}

func TestBuildHomeDataHeroWraps(t *testing.T) {
	site := content.Site{Hero: content.Hero{Images: []content.HeroImage{
		{Src: "/h0"}, {Src: "/h1"}, {Src: "/h2"}, {Src: "/h3"},
	}}}
	home := BuildHomeData(HomeInput{Site: site, Browser: news.NewBrowser(nil), Hero: -1}, lang.JA)
	require.Equal(t, 3, home.Hero.Index)
	require.Equal(t, "/h3", home.Hero.Src)
	require.Equal(t, "/?hero=2#home", home.Hero.PrevHref)
	require.Equal(t, "/#home", home.Hero.NextHref)
}

func TestBuildPreviewMarksLeadRow(t *testing.T) {
	p := BuildPreview(testCatalog()[0], lang.EN)
	require.Len(t, p.Spreads, 3)
	require.Equal(t, "/preview/2", p.Spreads[2].Href)
	for _, s := range p.Spreads {
		require.True(t, s.Lead)
	}
}

func TestContactViewProblemKey(t *testing.T) {
	f := contact.NewForm(contact.Draft{Name: "Hanako", Email: "bad"})
	f.Submit(context.Background(), contact.SenderFunc(nil))
	view := NewContactView(f)
	require.True(t, view.HasProblem("email"))
	require.False(t, view.HasProblem("name"))
	require.Equal(t, "contact.error.email.invalid", view.ProblemKey("email"))
	require.Equal(t, "contact.error.message.required", view.ProblemKey("message"))
	require.Empty(t, view.ProblemKey("name"))
	require.Equal(t, contact.NoticeInvalid, view.Notice)
}
