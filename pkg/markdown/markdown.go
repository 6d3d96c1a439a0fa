package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

func init() {
	ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	ugcPolicy.RequireNoReferrerOnLinks(true)
}

// Render converts user markdown into sanitised HTML.
func Render(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return ugcPolicy.Sanitize(source)
	}
	return ugcPolicy.Sanitize(buf.String())
}

// StripTags removes every tag, for single line fields such as titles and
// for snippets pushed over the live channel.
func StripTags(s string) string {
	// keep words from neighbouring blocks apart
	s = strings.ReplaceAll(s, "</p>", " ")
	s = strings.ReplaceAll(s, "<br>", " ")
	s = strings.ReplaceAll(s, "</div>", " ")

	clean := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Snippet returns at most n runes of tag free text.
func Snippet(s string, n int) string {
	clean := []rune(StripTags(s))
	if len(clean) <= n {
		return string(clean)
	}
	return string(clean[:n]) + "..."
}
