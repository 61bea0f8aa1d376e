package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/handlers"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
)

func chiParam(r *http.Request, name string) string { return chi.URLParam(r, name) }

// lightboxRequest addresses one lightbox state and its neighbours.
type lightboxRequest struct {
	catalog  gallery.Catalog
	category int
	index    int
	links    handlers.Linker
}

// openViewer opens a viewer for req and applies ?key=. redirect is set when
// the key moved the lightbox and the client should follow to the new state.
func (s *server) openViewer(r *http.Request, req lightboxRequest) (viewer *gallery.Viewer, redirect string) {
	viewer = gallery.NewViewer(s.lock)
	if !viewer.Show(req.catalog, req.category, req.index) {
		return viewer, req.links.Closed
	}
	if key := r.URL.Query().Get("key"); key != "" && viewer.HandleKey(key) {
		if !viewer.Open {
			return viewer, req.links.Closed
		}
		return viewer, req.links.At(viewer.Index)
	}
	return viewer, ""
}

func (s *server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	site := s.content.Site()
	key := chiParam(r, "category")
	c := site.Gallery.IndexOf(key)
	if c < 0 || site.Gallery.Len(c) == 0 {
		http.Redirect(w, r, "/#portfolio", http.StatusFound)
		return
	}
	l := custommw.Lang(r)
	category := site.Gallery[c]
	links := handlers.Linker{
		At:     func(i int) string { return handlers.PortfolioHref(key, i) },
		Closed: "/#portfolio",
	}
	viewer, redirect := s.openViewer(r, lightboxRequest{
		catalog:  site.Gallery,
		category: c,
		index:    intParam(r.URL.Query().Get("i"), 0),
		links:    links,
	})
	defer viewer.Unmount()
	if redirect != "" {
		s.redirect(w, r, redirect)
		return
	}

	lb, _ := handlers.BuildLightbox(viewer, category.Name(l), links, l)

	data := s.basePage(r, "nav.portfolio", category.Name(l))
	data.SEO.Robots = "noindex"
	data.SEO.Canonical = s.absolute("/#portfolio")
	data.Lightbox = &lb
	data.ScrollLocked = viewer.Locked()
	if custommw.IsHTMX(r.Context()) {
		s.views.render(w, r, http.StatusOK, "home", "lightbox", data)
		return
	}
	data.Home = s.homeData(r, handlers.NewContactView(nil))
	s.views.render(w, r, http.StatusOK, "home", "", data)
}

func (s *server) previewLinks() handlers.Linker {
	return handlers.Linker{At: handlers.PreviewHref, Closed: "/preview"}
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	l := custommw.Lang(r)
	preview := handlers.BuildPreview(s.content.Site().Preview, l)
	data := s.basePage(r, "preview.title", "")
	data.Preview = &preview
	s.views.render(w, r, http.StatusOK, "preview", "", data)
}

func (s *server) handlePreviewSpread(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chiParam(r, "index"))
	if err != nil {
		http.Redirect(w, r, "/preview", http.StatusFound)
		return
	}
	l := custommw.Lang(r)
	site := s.content.Site()
	viewer, redirect := s.openViewer(r, lightboxRequest{
		catalog:  gallery.Catalog{site.Preview},
		category: 0,
		index:    i,
		links:    s.previewLinks(),
	})
	defer viewer.Unmount()
	if redirect != "" {
		s.redirect(w, r, redirect)
		return
	}
	title := s.bundle.T(l, "preview.title")
	lb, _ := handlers.BuildLightbox(viewer, title, s.previewLinks(), l)

	preview := handlers.BuildPreview(site.Preview, l)
	data := s.basePage(r, "preview.title", lb.Position)
	data.SEO.Robots = "noindex"
	data.SEO.Canonical = s.absolute("/preview")
	data.Preview = &preview
	data.Lightbox = &lb
	data.ScrollLocked = viewer.Locked()
	if custommw.IsHTMX(r.Context()) {
		s.views.render(w, r, http.StatusOK, "preview", "lightbox", data)
		return
	}
	s.views.render(w, r, http.StatusOK, "preview", "", data)
}

// redirect sends the client to target. htmx requests get HX-Redirect since
// a 303 would be followed by the XHR itself.
func (s *server) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if custommw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
