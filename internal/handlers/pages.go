// Package handlers holds the view models rendered by the site templates.
package handlers

import (
	"html/template"

	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/nav"
)

// PageData is the view model shared by every page using the base layout.
type PageData struct {
	Title     string
	Lang      lang.Lang
	SEO       SEOData
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	ToggleHref  string
	LangHrefs   map[lang.Lang]string
	CSRFToken   string
	SiteName    string
	Social      []content.Link
	// ScrollLocked marks the document while a lightbox holds the scroll lock.
	ScrollLocked bool

	// Per-page payloads; exactly one is set.
	Home    *HomeData
	Preview *PreviewData
	News    *NewsDetailData
	Thanks  *ThanksData

	// Lightbox overlays the page when set.
	Lightbox *LightboxData
}

// SEOData carries per-page metadata.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Alternates  []Alternate
	JSONLD      []template.JS
}

// OpenGraph holds og:* values.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Alternate is an hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string
}

// ThanksData is the post-submission page.
type ThanksData struct {
	BackHref string
}

// ContactView is the contact section.
type ContactView struct {
	Draft    contact.Draft
	Status   contact.Status
	Notice   string
	Problems contact.Problems
	Sending  bool
}

// HasProblem reports whether field failed validation.
func (c ContactView) HasProblem(field string) bool {
	return c.Problems.Has(contact.Field(field))
}

// ProblemKey returns the i18n key for the first problem on field.
func (c ContactView) ProblemKey(field string) string {
	for _, p := range c.Problems {
		if p.Field == contact.Field(field) {
			return "contact.error." + field + "." + p.Code
		}
	}
	return ""
}

// NewContactView maps the form state to its view.
func NewContactView(f *contact.Form) ContactView {
	if f == nil {
		return ContactView{Status: contact.StatusIdle}
	}
	return ContactView{
		Draft:    f.Draft,
		Status:   f.Status,
		Notice:   f.Notice,
		Problems: f.Problems,
		Sending:  f.Sending(),
	}
}
