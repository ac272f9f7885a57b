package templates

import (
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
)

//go:embed bundles
var bundleFS embed.FS

// Bundle keys
const (
	StyleDefault      = "default"
	StyleTech         = "tech"
	StyleProfessional = "professional"
)

// styleAliases maps user-facing visual-style names to bundle keys.
var styleAliases = map[string]string{
	"科技感":                   StyleTech,
	"科技":                    StyleTech,
	"tech":                  StyleTech,
	"cyber":                 StyleTech,
	"tech/cyber":            StyleTech,
	"專業商務":                  StyleProfessional,
	"專業":                    StyleProfessional,
	"商務":                    StyleProfessional,
	"professional":          StyleProfessional,
	"business":              StyleProfessional,
	"professional/business": StyleProfessional,
	"default":               StyleDefault,
}

// ResolveStyle maps a visual-style key to a bundle key. Unknown or empty keys
// resolve to the default bundle.
func ResolveStyle(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return StyleDefault
	}
	if bundle, ok := styleAliases[normalized]; ok {
		return bundle
	}
	return StyleDefault
}

// Bundle is one pre-authored visual style. It is immutable after loading.
type Bundle struct {
	Key  string
	HTML string
	CSS  string
	JS   string

	tmpl *template.Template
}

// Store holds the embedded bundles keyed by style.
type Store struct {
	bundles map[string]*Bundle
}

// NewStore loads and parses every embedded bundle.
func NewStore() (*Store, error) {
	store := &Store{bundles: make(map[string]*Bundle)}

	for _, key := range []string{StyleDefault, StyleTech, StyleProfessional} {
		bundle, err := loadBundle(key)
		if err != nil {
			return nil, err
		}
		store.bundles[key] = bundle
	}
	return store, nil
}

func loadBundle(key string) (*Bundle, error) {
	read := func(name string) (string, error) {
		data, err := bundleFS.ReadFile(path.Join("bundles", key, name))
		if err != nil {
			return "", fmt.Errorf("failed to read %s bundle %s: %w", key, name, err)
		}
		return string(data), nil
	}

	html, err := read("index.html")
	if err != nil {
		return nil, err
	}
	css, err := read("style.css")
	if err != nil {
		return nil, err
	}
	js, err := read("app.js")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(key).Funcs(placeholderFuncs()).Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s bundle: %w", key, err)
	}

	return &Bundle{Key: key, HTML: html, CSS: css, JS: js, tmpl: tmpl}, nil
}

// Bundle returns the bundle for a visual-style key.
func (s *Store) Bundle(visualStyle string) *Bundle {
	return s.bundles[ResolveStyle(visualStyle)]
}

// Keys lists the loaded bundle keys.
func (s *Store) Keys() []string {
	return []string{StyleDefault, StyleTech, StyleProfessional}
}
