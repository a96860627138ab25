// Package render defines the renderer collaborator that patches an element's
// shadow content.
//
// Components return opaque [Content] from Render; the controller hands it to
// a [Renderer] together with the element's [Container]. The package ships
// [Markup], a string renderer that formats [Template] values, which is enough
// for headless hosts and tests. Diffing renderers plug in through the same
// interface.
package render

import (
	"fmt"
	"html"
	"strings"
)

// Content is the virtual content produced by a component. The core treats
// it as opaque.
type Content any

// Container is the patch target of a renderer.
type Container interface {
	// Content returns the current rendered markup.
	Content() string
	// SetContent replaces the rendered markup.
	SetContent(markup string)
	// Clear removes all rendered content.
	Clear()
}

// Renderer patches a container with content.
type Renderer interface {
	Render(container Container, content Content) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(container Container, content Content) error

// Render calls f.
func (f RendererFunc) Render(container Container, content Content) error {
	return f(container, content)
}

// Kind distinguishes HTML from SVG templates.
type Kind int

const (
	KindHTML Kind = iota
	KindSVG
)

// Template is markup with interpolated values. It is produced by HTML and
// SVG and processed by the renderer.
type Template struct {
	Kind   Kind
	Format string
	Args   []any
}

// HTML builds an HTML template. Format uses fmt verbs; string arguments are
// escaped by Markup, nested templates are inserted verbatim.
func HTML(format string, args ...any) Template {
	return Template{Kind: KindHTML, Format: format, Args: args}
}

// SVG builds an SVG template.
func SVG(format string, args ...any) Template {
	return Template{Kind: KindSVG, Format: format, Args: args}
}

// Markup renders Templates, strings and fmt.Stringers into the container.
// nil content clears it.
type Markup struct{}

// Render implements Renderer.
func (Markup) Render(container Container, content Content) error {
	out, err := String(content)
	if err != nil {
		return err
	}
	if out == "" {
		container.Clear()
		return nil
	}
	container.SetContent(out)
	return nil
}

// String formats content the way Markup renders it.
func String(content Content) (string, error) {
	switch c := content.(type) {
	case nil:
		return "", nil
	case Template:
		return c.String(), nil
	case []Template:
		var sb strings.Builder
		for _, t := range c {
			sb.WriteString(t.String())
		}
		return sb.String(), nil
	case string:
		return html.EscapeString(c), nil
	case fmt.Stringer:
		return html.EscapeString(c.String()), nil
	default:
		return "", fmt.Errorf("render: unsupported content %T", content)
	}
}

// String formats the template, escaping text arguments.
func (t Template) String() string {
	args := make([]any, len(t.Args))
	for i, arg := range t.Args {
		args[i] = escapeArg(arg)
	}
	return fmt.Sprintf(t.Format, args...)
}

func escapeArg(arg any) any {
	switch a := arg.(type) {
	case Template:
		return rawArg(a.String())
	case []Template:
		var sb strings.Builder
		for _, t := range a {
			sb.WriteString(t.String())
		}
		return rawArg(sb.String())
	case string:
		return html.EscapeString(a)
	case fmt.Stringer:
		return html.EscapeString(a.String())
	default:
		return arg
	}
}

// rawArg prints its text unescaped under any string verb.
type rawArg string

func (r rawArg) String() string { return string(r) }
