package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

const pagesDir = "pages"

// Page is a localized Markdown page such as the biography.
type Page struct {
	Slug      string
	Lang      lang.Lang
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
}

type pageFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// readPage loads <dir>/pages/<lang>/<slug>.md, trying l first and then the
// default language.
func readPage(dir, slug string, l lang.Lang, r *Renderer) (Page, error) {
	priority := []lang.Lang{l}
	if l != lang.Default {
		priority = append(priority, lang.Default)
	}
	for _, candidate := range priority {
		page, err := readPageFile(dir, slug, candidate, r)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func readPageFile(dir, slug string, l lang.Lang, r *Renderer) (Page, error) {
	file := filepath.Join(dir, pagesDir, string(l), slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	html, err := r.Render(body)
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Slug:      slug,
		Lang:      l,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      html,
		UpdatedAt: parseContentDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
