package models

import "strings"

// Required keys of a GeneratedContent object
const (
	ContentKeyPageTitle = "pageTitle"
	ContentKeyHeroTitle = "heroTitle"
)

// GeneratedContent is the marketing copy object produced by the model.
// It stays free-form: only pageTitle and heroTitle are required.
type GeneratedContent map[string]any

// Has reports whether key is present
func (c GeneratedContent) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// HasRequired reports whether both required keys are present
func (c GeneratedContent) HasRequired() bool {
	return c.Has(ContentKeyPageTitle) && c.Has(ContentKeyHeroTitle)
}

// String returns the trimmed string value of key, or "" when it is absent or not a string
func (c GeneratedContent) String(key string) string {
	s, _ := c[key].(string)
	return strings.TrimSpace(s)
}

// Strings returns the string elements of a list-valued key
func (c GeneratedContent) Strings(key string) []string {
	raw, ok := c[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// Objects returns the object elements of a list-valued key, each flattened to string fields
func (c GeneratedContent) Objects(key string) []map[string]string {
	raw, ok := c[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]string, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		flat := make(map[string]string, len(obj))
		for k, v := range obj {
			if s, ok := v.(string); ok {
				flat[k] = strings.TrimSpace(s)
			}
		}
		out = append(out, flat)
	}
	return out
}
