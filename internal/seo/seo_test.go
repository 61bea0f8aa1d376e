package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBookOffers(t *testing.T) {
	out := JSON(Book("山と自然に魅せられて", "Masahiro Koseki", "https://example.com/b.webp", []string{"https://a.example/jp"}))
	require.Contains(t, out, `"@type":"Book"`)
	require.Contains(t, out, `"offers":[{"@type":"Offer","url":"https://a.example/jp"}]`)
}

func TestBreadcrumbPositionsStartAtOne(t *testing.T) {
	out := JSON(BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "/"}, {Name: "News", Item: "/#news"}}))
	require.Contains(t, out, `"position":1`)
	require.Contains(t, out, `"position":2`)
}

func TestJSONReturnsEmptyOnError(t *testing.T) {
	require.Equal(t, "", JSON(map[string]any{"bad": make(chan int)}))
}
