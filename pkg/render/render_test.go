package render

import (
	"errors"
	"testing"
)

type box struct{ markup string }

func (b *box) Content() string          { return b.markup }
func (b *box) SetContent(markup string) { b.markup = markup }
func (b *box) Clear()                   { b.markup = "" }

func TestTemplate_EscapesText(t *testing.T) {
	got := HTML("<button>%s: %d</button>", "<b>Counter</b>", 3).String()
	want := "<button>&lt;b&gt;Counter&lt;/b&gt;: 3</button>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTemplate_NestsVerbatim(t *testing.T) {
	inner := SVG(`<circle r="%d"/>`, 4)
	got := HTML("<div>%s</div>", inner).String()
	want := `<div><circle r="4"/></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	list := HTML("<ul>%s</ul>", []Template{HTML("<li>%s</li>", "a"), HTML("<li>%s</li>", "b")}).String()
	if list != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("got %q", list)
	}
}

func TestMarkup_Render(t *testing.T) {
	c := &box{}
	if err := (Markup{}).Render(c, HTML("<p>%s</p>", "hi")); err != nil {
		t.Fatal(err)
	}
	if c.Content() != "<p>hi</p>" {
		t.Errorf("Content() = %q", c.Content())
	}

	if err := (Markup{}).Render(c, nil); err != nil {
		t.Fatal(err)
	}
	if c.Content() != "" {
		t.Errorf("nil content should clear, got %q", c.Content())
	}
}

func TestMarkup_UnsupportedContent(t *testing.T) {
	c := &box{markup: "keep"}
	if err := (Markup{}).Render(c, 42); err == nil {
		t.Error("expected error for unsupported content")
	}
	if c.Content() != "keep" {
		t.Error("failed render should not touch the container")
	}
}

func TestRendererFunc(t *testing.T) {
	want := errors.New("boom")
	r := RendererFunc(func(Container, Content) error { return want })
	if err := r.Render(&box{}, nil); err != want {
		t.Errorf("Render() = %v, want %v", err, want)
	}
}
