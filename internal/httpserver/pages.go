package httpserver

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/handlers"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
	"github.com/masahiro-koseki/masahiro-site/internal/nav"
	"github.com/masahiro-koseki/masahiro-site/internal/news"
	"github.com/masahiro-koseki/masahiro-site/internal/observability"
	"github.com/masahiro-koseki/masahiro-site/internal/seo"
)

// basePage fills the layout fields shared by every page.
func (s *server) basePage(r *http.Request, titleKey, crumbLabel string) handlers.PageData {
	l := custommw.Lang(r)
	site := s.content.Site()
	title := site.Name
	if titleKey != "" {
		title = s.bundle.T(l, titleKey) + " | " + site.Name
	}
	hrefs := map[lang.Lang]string{}
	for _, candidate := range lang.Supported() {
		hrefs[candidate] = langHref(r.URL, candidate)
	}
	data := handlers.PageData{
		Title:       title,
		Lang:        l,
		Analytics:   s.cfg.Analytics,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		ToggleHref:  hrefs[l.Other()],
		LangHrefs:   hrefs,
		CSRFToken:   custommw.CSRFToken(r),
		SiteName:    site.Name,
		Social:      site.Social,
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path, crumbLabel),
	}
	data.SEO = handlers.SEOData{
		Title:       title,
		Description: s.bundle.T(l, "meta.description"),
		Canonical:   s.absolute(r.URL.Path),
		OG: handlers.OpenGraph{
			Title:       title,
			Description: s.bundle.T(l, "meta.description"),
			Image:       s.absolute(site.Book.Cover),
			Type:        "website",
			URL:         s.absolute(r.URL.Path),
			SiteName:    site.Name,
		},
	}
	for _, candidate := range lang.Supported() {
		data.SEO.Alternates = append(data.SEO.Alternates, handlers.Alternate{
			Href:     s.absolute(r.URL.Path + "?hl=" + candidate.String()),
			Hreflang: candidate.String(),
		})
	}
	if len(data.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(data.Breadcrumbs))
		for _, c := range data.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = s.bundle.T(l, c.LabelKey)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: s.absolute(c.Href)})
		}
		data.SEO.JSONLD = append(data.SEO.JSONLD, template.JS(seo.JSON(seo.BreadcrumbList(items)))) //nolint:gosec
	}
	return data
}

func (s *server) absolute(path string) string {
	if path == "" || s.cfg.BaseURL == "" {
		return path
	}
	return s.cfg.BaseURL + path
}

// langHref returns u with hl set to l, keeping the other query values.
func langHref(u *url.URL, l lang.Lang) string {
	q := u.Query()
	q.Set("hl", l.String())
	out := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return out.String()
}

// homeData assembles the home sections. contactView is the form state to
// show; hero and newsLimit come from the query string.
func (s *server) homeData(r *http.Request, contactView handlers.ContactView) *handlers.HomeData {
	l := custommw.Lang(r)
	q := r.URL.Query()
	about, err := s.content.Page("about", l)
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		observability.FromContext(r.Context()).Warn("about page unavailable", zap.Error(err))
	}
	browser := news.NewBrowser(s.content.News()).WithLimit(intParam(q.Get("news"), news.PageSize))
	home := handlers.BuildHomeData(handlers.HomeInput{
		Site:    s.content.Site(),
		About:   about,
		Browser: browser,
		Hero:    intParam(q.Get("hero"), 0),
		Contact: contactView,
	}, l)
	return &home
}

func (s *server) homeJSONLD(l lang.Lang) []template.JS {
	site := s.content.Site()
	sameAs := make([]string, 0, len(site.Social))
	for _, link := range site.Social {
		sameAs = append(sameAs, link.URL)
	}
	book := site.Book
	offers := []string{book.Stores.In(lang.JA), book.Stores.In(lang.EN)}
	docs := []any{
		seo.WebSite(site.Name, s.absolute("/"), []string{"ja", "en"}),
		seo.Person(site.Name, s.absolute("/"), sameAs),
		seo.Book(s.bundle.T(l, "book.name"), site.Name, s.absolute(book.Cover), offers),
	}
	out := make([]template.JS, 0, len(docs))
	for _, d := range docs {
		out = append(out, template.JS(seo.JSON(d))) //nolint:gosec
	}
	return out
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.basePage(r, "", "")
	data.Home = s.homeData(r, handlers.NewContactView(nil))
	data.SEO.JSONLD = append(data.SEO.JSONLD, s.homeJSONLD(data.Lang)...)
	if custommw.IsHTMX(r.Context()) && r.Header.Get("HX-Target") == "news-list" {
		s.views.render(w, r, http.StatusOK, "home", "news-list", data)
		return
	}
	s.views.render(w, r, http.StatusOK, "home", "", data)
}

func (s *server) handleNewsDetail(w http.ResponseWriter, r *http.Request) {
	l := custommw.Lang(r)
	date := chiParam(r, "date")
	limit := intParam(r.URL.Query().Get("limit"), news.PageSize)
	browser := news.NewBrowser(s.content.News()).WithLimit(limit).Select(date)
	it, ok := browser.Current()
	if !ok {
		http.Redirect(w, r, handlers.NewsListHref(browser.Limit), http.StatusFound)
		return
	}
	body, err := s.content.NewsBody(it, l)
	if err != nil {
		observability.FromContext(r.Context()).Error("render news body", zap.String("date", date), zap.Error(err))
		body = template.HTML(template.HTMLEscapeString(it.Body(l))) //nolint:gosec
	}
	detail, _ := handlers.BuildNewsDetail(browser, body, l)

	data := s.basePage(r, "nav.news", detail.Label)
	data.Title = detail.Title + " | " + data.SiteName
	data.SEO.Title = data.Title
	data.SEO.OG.Type = "article"
	data.SEO.JSONLD = append(data.SEO.JSONLD, template.JS(seo.JSON( //nolint:gosec
		seo.Article(detail.Title, s.absolute(r.URL.Path), data.SiteName, it.Date, l.String()),
	)))
	data.News = &detail
	if custommw.IsHTMX(r.Context()) {
		s.views.render(w, r, http.StatusOK, "news", "news-detail", data)
		return
	}
	s.views.render(w, r, http.StatusOK, "news", "", data)
}

func (s *server) handleThanks(w http.ResponseWriter, r *http.Request) {
	data := s.basePage(r, "thanks.title", "")
	data.SEO.Robots = "noindex"
	data.Thanks = &handlers.ThanksData{BackHref: "/"}
	s.views.render(w, r, http.StatusOK, "thanks", "", data)
}

func (s *server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := s.basePage(r, "notfound.title", "")
	data.SEO.Robots = "noindex"
	s.views.render(w, r, http.StatusNotFound, "notfound", "", data)
}

func intParam(v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
