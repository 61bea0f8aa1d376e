package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildUsesAnchorsOnHome(t *testing.T) {
	items := Build("/")
	if items[1].Href != "#book" {
		t.Fatalf("expected bare anchor, got %s", items[1].Href)
	}
	for _, it := range items {
		if it.Active {
			t.Fatalf("no section should be active on home, got %s", it.LabelKey)
		}
	}
}

func TestBuildMarksSectionOfSecondaryPage(t *testing.T) {
	items := Build("/preview/3")
	if items[1].Href != "/#book" || !items[1].Active {
		t.Fatalf("unexpected book item %+v", items[1])
	}
	items = Build("/news/2025-11-05")
	if !items[4].Active {
		t.Fatalf("news should be active, got %+v", items[4])
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := Breadcrumbs("/news/2025-11-05", "2025.11.05")
	want := []Crumb{
		{Href: "/", LabelKey: "nav.home"},
		{Href: "/#news", LabelKey: "nav.news"},
		{Href: "/news/2025-11-05", Label: "2025.11.05", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}

	got = Breadcrumbs("/preview", "")
	want = []Crumb{
		{Href: "/", LabelKey: "nav.home"},
		{Href: "/preview", LabelKey: "preview.title", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}
}
