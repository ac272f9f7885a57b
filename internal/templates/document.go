package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- with .MetaDescription}}
<meta name="description" content="{{.}}">
<meta property="og:description" content="{{.}}">
{{- end}}
<meta property="og:title" content="{{.Title}}">
<style>{{.CSS}}</style>
</head>
<body>
{{.Body}}
<script>{{.JS}}</script>
</body>
</html>
`))

type documentData struct {
	Title           string
	MetaDescription string
	CSS             template.CSS
	Body            template.HTML
	JS              template.JS
}

// RenderDocument wraps a stored page into a complete HTML document.
// The stored html/css/js come from the compositor or the owner's editor and are emitted as is.
func RenderDocument(page *models.LandingPage) (string, error) {
	data := documentData{
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		CSS:             template.CSS(page.CSS),   //nolint:gosec // owner-authored page styles
		Body:            template.HTML(page.HTML), //nolint:gosec // composed or owner-edited markup
		JS:              template.JS(page.JS),     //nolint:gosec // bundle script
	}

	var out bytes.Buffer
	if err := documentTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render page document: %w", err)
	}
	return out.String(), nil
}
