package utils

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	descPolicy = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

func init() {
	descPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	descPolicy.RequireNoReferrerOnLinks(true)
}

// RenderDescription renders an artwork description (markdown from the
// marketplace metadata) into sanitized HTML.
func RenderDescription(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // Fallback
	}
	return template.HTML(descPolicy.SanitizeBytes(buf.Bytes()))
}

// SanitizeText strips all markup from user-supplied comment text. Comments
// are plain text; anything that looks like HTML is hostile.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
