package generation

import (
	"testing"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FencedJSON(t *testing.T) {
	raw := "```json\n{\"pageTitle\":\"X\",\"heroTitle\":\"Y\"}\n```"

	content := Parse(raw, "Acme")

	assert.Equal(t, models.GeneratedContent{"pageTitle": "X", "heroTitle": "Y"}, content)
}

func TestParse_ValidJSONUnchanged(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", `{"pageTitle":"A","heroTitle":"B","nextSteps":["one","two"]}`},
		{"bare fence", "```\n{\"pageTitle\":\"A\",\"heroTitle\":\"B\",\"nextSteps\":[\"one\",\"two\"]}\n```"},
		{"padded", "\n\n  {\"pageTitle\":\"A\",\"heroTitle\":\"B\",\"nextSteps\":[\"one\",\"two\"]}  \n"},
	}

	want := models.GeneratedContent{
		"pageTitle": "A",
		"heroTitle": "B",
		"nextSteps": []any{"one", "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, Parse(tt.raw, "ignored"))
		})
	}
}

func TestParse_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"empty", ""},
		{"array", `[{"pageTitle":"A","heroTitle":"B"}]`},
		{"missing hero", `{"pageTitle":"A"}`},
		{"truncated", `{"pageTitle":"A","heroTitle":`},
		{"trailing text", `{"pageTitle":"A","heroTitle":"B"} thanks!`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := Parse(tt.raw, "  Acme 顧問  ")
			assert.Equal(t, FallbackContent("Acme 顧問"), content)
			assert.Equal(t, "Acme 顧問", content["pageTitle"])
		})
	}
}

func TestFallbackContent_AlwaysHasRequiredKeys(t *testing.T) {
	for _, businessInfo := range []string{"", "   ", "Acme", "多行\n商業介紹"} {
		content := FallbackContent(businessInfo)
		require.NoError(t, EnsureRequired(content))
		assert.NotEmpty(t, content.String("pageTitle"))
		assert.NotEmpty(t, content.String("heroTitle"))
	}
}

func TestFallbackContent_TitleLiteralWhenBusinessInfoBlank(t *testing.T) {
	assert.Equal(t, FallbackPageTitle, FallbackContent(" \n ")["pageTitle"])
}

func TestEnsureRequired(t *testing.T) {
	assert.NoError(t, EnsureRequired(models.GeneratedContent{"pageTitle": "a", "heroTitle": "b"}))
	assert.ErrorIs(t, EnsureRequired(models.GeneratedContent{"pageTitle": "a"}), ErrMissingRequiredFields)
	assert.ErrorIs(t, EnsureRequired(nil), ErrMissingRequiredFields)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```JSON {\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripFences("  {\"a\":1}\n"))
	assert.Equal(t, "", StripFences("```\n```"))
}
