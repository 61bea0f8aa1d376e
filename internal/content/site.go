package content

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

// ErrInvalidSite is wrapped by every Site validation failure.
var ErrInvalidSite = errors.New("content: invalid site manifest")

// Text is a string per language code.
type Text map[string]string

// In returns the value for l, falling back to the default language.
func (t Text) In(l lang.Lang) string {
	if v, ok := t[string(l)]; ok && v != "" {
		return v
	}
	return t[string(lang.Default)]
}

// Site is the static asset manifest behind the home, preview and footer.
type Site struct {
	Name       string           `yaml:"name"`
	Hero       Hero             `yaml:"hero"`
	Book       Book             `yaml:"book"`
	Highlights []Highlight      `yaml:"highlights"`
	Gallery    gallery.Catalog  `yaml:"gallery"`
	Preview    gallery.Category `yaml:"preview"`
	About      About            `yaml:"about"`
	Social     []Link           `yaml:"social"`
}

// Hero is the rotating banner.
type Hero struct {
	Images []HeroImage `yaml:"images"`
}

// HeroImage is one banner frame.
type HeroImage struct {
	Src      string `yaml:"src"`
	Alt      string `yaml:"alt"`
	Position string `yaml:"position"`
}

// At returns frame i with wraparound and the normalized index.
func (h Hero) At(i int) (HeroImage, int) {
	if len(h.Images) == 0 {
		return HeroImage{}, 0
	}
	i = gallery.Wrap(i, len(h.Images))
	return h.Images[i], i
}

// Book describes the promoted photo book.
type Book struct {
	Cover    string              `yaml:"cover"`
	CoverAlt string              `yaml:"cover_alt"`
	Specs    map[string][]string `yaml:"specs"`
	Stores   Text                `yaml:"stores"`
}

// SpecsIn returns the specification lines for l.
func (b Book) SpecsIn(l lang.Lang) []string {
	if v := b.Specs[string(l)]; len(v) > 0 {
		return v
	}
	return b.Specs[string(lang.Default)]
}

// Highlight is one seasonal teaser linking into the preview.
type Highlight struct {
	Key     string `yaml:"key"`
	Src     string `yaml:"src"`
	Alt     string `yaml:"alt"`
	Titles  Text   `yaml:"titles"`
	Descs   Text   `yaml:"descs"`
	Preview int    `yaml:"preview"`
}

// About holds the profile facts next to the biography page.
type About struct {
	Location Text            `yaml:"location"`
	Focus    Text            `yaml:"focus"`
	Timeline []TimelineEntry `yaml:"timeline"`
	Features []Text          `yaml:"features"`
}

// TimelineEntry is one line of the biography timeline.
type TimelineEntry struct {
	Year string `yaml:"year"`
	Text Text   `yaml:"text"`
}

// Link is an outbound profile link.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Validate checks the invariants the handlers rely on.
func (s Site) Validate() error {
	var problems []error
	if len(s.Hero.Images) == 0 {
		problems = append(problems, errors.New("hero has no images"))
	}
	keys := mapset.NewThreadUnsafeSet[string]()
	for i, c := range s.Gallery {
		if c.Key == "" {
			problems = append(problems, fmt.Errorf("gallery[%d] has no key", i))
		} else if !keys.Add(c.Key) {
			problems = append(problems, fmt.Errorf("gallery key %q is duplicated", c.Key))
		}
		for j, im := range c.Images {
			if im.Src == "" {
				problems = append(problems, fmt.Errorf("gallery %q image %d has no src", c.Key, j))
			}
		}
	}
	if len(s.Preview.Images) == 0 {
		problems = append(problems, errors.New("preview has no spreads"))
	}
	for _, h := range s.Highlights {
		if h.Preview < 0 || h.Preview >= len(s.Preview.Images) {
			problems = append(problems, fmt.Errorf("highlight %q points at missing spread %d", h.Key, h.Preview))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSite, errors.Join(problems...))
}
