package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/xeipuuv/gojsonschema"
)

// contentSchema is the minimum shape a model response must have to be accepted.
const contentSchema = `{
  "type": "object",
  "required": ["pageTitle", "heroTitle"],
  "properties": {
    "pageTitle": {"type": "string", "minLength": 1},
    "heroTitle": {"type": "string", "minLength": 1}
  }
}`

var compiledContentSchema = mustCompileSchema(contentSchema)

var (
	// ErrEmptyResponse is returned for a completion without any text
	ErrEmptyResponse = errors.New("empty response")
	// ErrNotJSONObject is returned when the response parses but is not an object
	ErrNotJSONObject = errors.New("response is not a JSON object")
)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid content schema: %v", err))
	}
	return compiled
}

// StripFences removes surrounding whitespace and one enclosing markdown code fence,
// with or without a language tag.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimLeftFunc(text, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// decodeObject strictly parses text as a single JSON object.
func decodeObject(text string) (map[string]any, error) {
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}

// Validate checks a raw model response: fences are stripped, the text must be a
// JSON object and carry non-empty pageTitle and heroTitle strings.
// The returned error text is suitable for feeding back to the model.
func Validate(raw string) error {
	obj, err := decodeObject(StripFences(raw))
	if err != nil {
		return err
	}

	result, err := compiledContentSchema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, resultErr.String())
	}
	return fmt.Errorf("response does not match the required shape: %s", strings.Join(details, "; "))
}
