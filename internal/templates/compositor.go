package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
)

type slotKind int

const (
	textSlot slotKind = iota
	objectListSlot
	stringListSlot
)

// slots is the closed set of content keys a bundle may reference.
var slots = map[string]slotKind{
	"pageTitle":       textSlot,
	"metaDescription": textSlot,
	"heroTitle":       textSlot,
	"heroSubtitle":    textSlot,
	"heroCtaText":     textSlot,
	"instructorName":  textSlot,
	"instructorBio":   textSlot,
	"formTitle":       textSlot,
	"formSubtitle":    textSlot,
	"formCtaText":     textSlot,
	"thankYouTitle":   textSlot,
	"thankYouMessage": textSlot,
	"urgencyText":     textSlot,
	"valuePoints":     objectListSlot,
	"testimonials":    objectListSlot,
	"faq":             objectListSlot,
	"nextSteps":       stringListSlot,
}

// contactFieldAliases maps requested contact field names to form inputs.
var contactFieldAliases = map[string]string{
	"name":      "name",
	"姓名":        "name",
	"名字":        "name",
	"email":     "email",
	"e-mail":    "email",
	"電郵":        "email",
	"電子郵件":      "email",
	"phone":     "phone",
	"電話":        "phone",
	"手機":        "phone",
	"whatsapp":  "phone",
	"instagram": "instagram",
	"ig":        "instagram",
}

var defaultContactFields = []string{"name", "email", "phone"}

var hexColorPattern = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// ComposeInput is everything the compositor needs for one page.
type ComposeInput struct {
	PageID        string
	Content       models.GeneratedContent
	VisualStyle   string
	BrandColors   []string
	ContactFields []string
	Assets        []string
}

// Composition is the final page ready for persistence.
type Composition struct {
	HTML            string
	CSS             string
	JS              string
	Title           string
	MetaDescription string
	Bundle          string
}

func checkSlot(name string, want slotKind) error {
	kind, ok := slots[name]
	if !ok {
		return fmt.Errorf("unknown slot %q", name)
	}
	if kind != want {
		return fmt.Errorf("slot %q used with the wrong kind", name)
	}
	return nil
}

// placeholderFuncs registers the func names at parse time. Rendering replaces them.
func placeholderFuncs() template.FuncMap {
	return renderFuncs(ComposeInput{})
}

func renderFuncs(in ComposeInput) template.FuncMap {
	fields := contactFieldSet(in.ContactFields)

	return template.FuncMap{
		"slot": func(name, fallback string) (string, error) {
			if err := checkSlot(name, textSlot); err != nil {
				return "", err
			}
			if value := in.Content.String(name); value != "" {
				return value, nil
			}
			return fallback, nil
		},
		"list": func(name string) ([]map[string]string, error) {
			if err := checkSlot(name, objectListSlot); err != nil {
				return nil, err
			}
			return in.Content.Objects(name), nil
		},
		"items": func(name string) ([]string, error) {
			if err := checkSlot(name, stringListSlot); err != nil {
				return nil, err
			}
			return in.Content.Strings(name), nil
		},
		"field": func(name string) bool {
			return fields[name]
		},
		"photo": func() string {
			if len(in.Assets) == 0 {
				return ""
			}
			return in.Assets[0]
		},
		"pageID": func() string {
			return in.PageID
		},
	}
}

func contactFieldSet(requested []string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range requested {
		if input, ok := contactFieldAliases[strings.ToLower(strings.TrimSpace(field))]; ok {
			set[input] = true
		}
	}
	if len(set) == 0 {
		for _, field := range defaultContactFields {
			set[field] = true
		}
	}
	return set
}

// Compose renders content into the bundle selected by the visual style.
// The same input always produces byte-identical output.
func (s *Store) Compose(in ComposeInput) (*Composition, error) {
	bundle := s.Bundle(in.VisualStyle)

	tmpl, err := bundle.tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s bundle: %w", bundle.Key, err)
	}
	tmpl = tmpl.Funcs(renderFuncs(in))

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to render %s bundle: %w", bundle.Key, err)
	}

	metrics.TemplateSelections.WithLabelValues(bundle.Key).Inc()

	return &Composition{
		HTML:            out.String(),
		CSS:             bundle.CSS + BrandColorCSS(in.BrandColors),
		JS:              bundle.JS,
		Title:           in.Content.String("pageTitle"),
		MetaDescription: in.Content.String("metaDescription"),
		Bundle:          bundle.Key,
	}, nil
}

// ExtractHexColors returns the distinct hex colour codes found in the inputs, lowercased, in order.
func ExtractHexColors(inputs []string) []string {
	seen := make(map[string]bool)
	var colors []string
	for _, input := range inputs {
		for _, match := range hexColorPattern.FindAllString(input, -1) {
			color := strings.ToLower(match)
			if !seen[color] {
				seen[color] = true
				colors = append(colors, color)
			}
		}
	}
	return colors
}

// BrandColorCSS builds the override block appended after the bundle CSS.
// It is empty when the inputs contain no hex colours.
func BrandColorCSS(inputs []string) string {
	colors := ExtractHexColors(inputs)
	if len(colors) == 0 {
		return ""
	}

	primary := colors[0]
	secondary, accent := primary, primary
	if len(colors) > 1 {
		secondary = colors[1]
		accent = colors[1]
	}
	if len(colors) > 2 {
		accent = colors[2]
	}

	var b strings.Builder
	b.WriteString("\n/* brand colors */\n")
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --brand-primary: %s;\n", primary)
	fmt.Fprintf(&b, "  --brand-secondary: %s;\n", secondary)
	fmt.Fprintf(&b, "  --brand-accent: %s;\n", accent)
	b.WriteString("}\n")
	b.WriteString(".btn-primary { background: var(--brand-primary); border-color: var(--brand-primary); }\n")
	b.WriteString(".section-title { color: var(--brand-primary); }\n")
	b.WriteString(".value-card h3 { color: var(--brand-secondary); }\n")
	b.WriteString(".urgency { color: var(--brand-accent); }\n")
	return b.String()
}
