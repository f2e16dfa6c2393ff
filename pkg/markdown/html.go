package markdown

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/exp/slices"
)

// Raw HTML is dropped and links are restricted to trusted protocols.
const safeFlags = html.CommonFlags | html.SkipHTML | html.Safelink | html.NofollowLinks | html.NoreferrerLinks

// Schemes allowed in image sources. Relative paths are always allowed.
var trustedSchemes = []string{"http", "https", "ftp", "mailto"}

// RenderToSafeHTML converts a Markdown source into HTML that can be injected as is.
// Raw HTML present in the source is skipped and unsafe links or image sources (ex: javascript:) are not rendered.
func RenderToSafeHTML(md string) string {
	// A parser cannot be reused between documents
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          safeFlags,
		RenderNodeHook: blankUnsafeImages,
	})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return strings.TrimSpace(string(out))
}

// blankUnsafeImages empties image sources using an untrusted scheme.
// Safelink only applies to <a> elements.
func blankUnsafeImages(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if image, ok := node.(*ast.Image); ok && entering && !IsSafeDestination(string(image.Destination)) {
		image.Destination = nil
	}
	return ast.GoToNext, false
}

// IsSafeDestination returns if a link destination is relative or uses a trusted scheme.
func IsSafeDestination(destination string) bool {
	// Browsers ignore whitespace and control characters inside schemes (ex: "java\tscript:")
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(destination))

	i := strings.IndexAny(cleaned, ":/?#")
	if i == -1 || cleaned[i] != ':' {
		return true
	}
	return slices.Contains(trustedSchemes, cleaned[:i])
}
