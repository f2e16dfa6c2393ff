package markdown_test

import (
	"testing"

	"github.com/julien-sobczak/the-notebook/pkg/markdown"
	"github.com/stretchr/testify/assert"
)

func TestRenderToSafeHTML(t *testing.T) {

	t.Run("Basic", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("# Markdown Example\n\nThis is a *markdown* cell.")
		assert.Contains(t, actual, "<h1")
		assert.Contains(t, actual, "Markdown Example</h1>")
		assert.Contains(t, actual, "<em>markdown</em>")
	})

	t.Run("Raw HTML is skipped", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("<script>alert('x')</script>\n\nHello <b onclick=\"x()\">you</b>")
		assert.NotContains(t, actual, "<script")
		assert.NotContains(t, actual, "onclick")
		assert.Contains(t, actual, "Hello")
	})

	t.Run("Unsafe links are not rendered", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("[click](javascript:alert(1))")
		assert.NotContains(t, actual, `href="javascript`)
		assert.Contains(t, actual, "click")
	})

	t.Run("Unsafe image sources are not rendered", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("![x](javascript:alert(1))")
		assert.NotContains(t, actual, "javascript")
		assert.Contains(t, actual, `alt="x"`)

		actual = markdown.RenderToSafeHTML("![x](JavaScript:alert(1)) ![y](data:text/html;base64,PHNjcmlwdD4=)")
		assert.NotContains(t, actual, "alert")
		assert.NotContains(t, actual, "data:")
	})

	t.Run("Safe image sources are kept", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("![logo](https://example.org/logo.png) ![local](images/logo.png)")
		assert.Contains(t, actual, `src="https://example.org/logo.png"`)
		assert.Contains(t, actual, `src="images/logo.png"`)
	})

	t.Run("Text is escaped", func(t *testing.T) {
		actual := markdown.RenderToSafeHTML("a < b && c > d")
		assert.Contains(t, actual, "&lt;")
		assert.NotContains(t, actual, "a < b")
	})
}

func TestIsSafeDestination(t *testing.T) {
	var tests = []struct {
		destination string
		safe        bool
	}{
		{"https://example.org/logo.png", true},
		{"http://example.org", true},
		{"mailto:me@example.org", true},
		{"images/logo.png", true},
		{"../logo.png", true},
		{"#intro", true},
		{"/img/a:b.png", true},
		{"javascript:alert(1)", false},
		{"JavaScript:alert(1)", false},
		{"java\tscript:alert(1)", false},
		{" javascript:alert(1)", false},
		{"vbscript:msgbox", false},
		{"data:image/png;base64,AAAA", false},
	}
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			assert.Equal(t, tt.safe, markdown.IsSafeDestination(tt.destination))
		})
	}
}
