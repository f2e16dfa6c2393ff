package core

import (
	"fmt"
	"html/template"
	"strings"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
{{- range .Sections }}
<section id="{{ .Anchor }}" class="cell cell-{{ .Kind }}">
{{- if eq .Kind "markdown" }}
{{ .HTML }}
{{- else }}
<pre><code{{ if $.Language }} class="language-{{ $.Language }}"{{ end }}>{{ .Code }}</code></pre>
{{- end }}
</section>
{{- end }}
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type renderedSection struct {
	Anchor string
	Kind   Kind
	// Markdown cells
	HTML template.HTML
	// Code cells (escaped by the template)
	Code string
}

// RenderHTML exports the notebook as a standalone HTML page.
// Markdown cells are converted using the renderer. Code cells are escaped.
func (n *Notebook) RenderHTML(renderer MarkdownRenderer, language string) (string, error) {
	infos, err := n.Describe()
	if err != nil {
		return "", err
	}

	usedAnchors := make(map[string]bool)
	var sections []renderedSection
	for _, info := range infos {
		anchor := info.Slug
		if anchor == "" || usedAnchors[anchor] {
			anchor = info.ID
		}
		usedAnchors[anchor] = true

		section := renderedSection{
			Anchor: anchor,
			Kind:   info.Kind,
		}
		if info.Kind == KindMarkdown {
			// The renderer guarantees a safe output
			section.HTML = template.HTML(renderer.RenderToSafeHTML(info.Content))
		} else {
			section.Code = info.Content
		}
		sections = append(sections, section)
	}

	title := n.name
	if len(infos) > 0 && infos[0].Kind == KindMarkdown && infos[0].Title != "" {
		title = infos[0].Title
	}

	var buf strings.Builder
	err = pageTmpl.Execute(&buf, map[string]any{
		"Title":    title,
		"Language": language,
		"Sections": sections,
	})
	if err != nil {
		return "", fmt.Errorf("unable to render notebook: %w", err)
	}
	return buf.String(), nil
}
