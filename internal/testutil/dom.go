package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses a rendered page or fragment into a goquery document.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Text returns the trimmed text of the nodes under s matching selector.
func Text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).Text())
}

// Attr returns attribute name of the first node under s matching selector
// and fails the test when the node or attribute is missing.
func Attr(t testing.TB, s *goquery.Selection, selector, name string) string {
	t.Helper()

	v, ok := s.Find(selector).Attr(name)
	if !ok {
		t.Fatalf("%s: missing attribute %q", selector, name)
	}
	return v
}
