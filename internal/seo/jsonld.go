// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import "github.com/goccy/go-json"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Person describes the photographer.
func Person(name, url string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context":   "https://schema.org",
		"@type":      "Person",
		"name":       name,
		"jobTitle":   "Landscape photographer",
		"knowsAbout": []string{"Landscape photography", "Mountains", "Mountain streams"},
	}
	if url != "" {
		m["url"] = url
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string, languages []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if len(languages) > 0 {
		m["inLanguage"] = languages
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Book describes the photo book and where to buy it.
func Book(name, author, imageURL string, offers []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Book",
		"name":     name,
		"author":   map[string]any{"@type": "Person", "name": author},
		"bookFormat": []string{
			"https://schema.org/Paperback",
			"https://schema.org/EBook",
		},
		"inLanguage": []string{"ja", "en"},
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if len(offers) > 0 {
		list := make([]map[string]any, 0, len(offers))
		for _, u := range offers {
			list = append(list, map[string]any{"@type": "Offer", "url": u})
		}
		m["offers"] = list
	}
	return m
}

// Article returns a minimal Article schema payload for a news entry.
func Article(headline, url, authorName, datePublished, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}
