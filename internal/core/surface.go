package core

// Surface is the capability to render an editable view of some text.
// How the text is displayed and which language intelligence is layered on it
// does not matter here.
type Surface interface {
	// Render displays the initial text. onChange must be called with the full
	// visible text every time the user edits it.
	Render(initialText string, onChange func(text string)) (Handle, error)
}

// Handle is a rendered view.
type Handle interface {
	// Dispose releases the resources of the view.
	Dispose() error
}

// Masker is implemented by handles displaying the whole shared document.
// Mask receives the up-to-date projection after every committed change.
// Mask must not trigger onChange.
type Masker interface {
	Mask(projection Projection)
}

// MarkdownRenderer converts a Markdown source to HTML safe to inject as is.
type MarkdownRenderer interface {
	RenderToSafeHTML(source string) string
}

// MarkdownRendererFunc is an adapter to use ordinary functions as renderers.
type MarkdownRendererFunc func(source string) string

func (f MarkdownRendererFunc) RenderToSafeHTML(source string) string {
	return f(source)
}
