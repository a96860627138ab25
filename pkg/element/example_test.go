package element_test

import (
	"fmt"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/platform/memdom"
	"github.com/go-drift/elements/pkg/render"
)

type greeting struct {
	core.Base
	name string
}

func (g *greeting) Render() render.Content {
	return render.HTML("<p>Hello, %s!</p>", g.name)
}

var greetingClass = func() *element.Class[*greeting] {
	cls := element.NewClass(func(ctrl *core.Controller) *greeting {
		return &greeting{Base: core.NewBase(ctrl), name: "World"}
	})
	element.Prop(cls, "name", func(g *greeting) *string { return &g.name },
		element.PropConfig{Attr: convert.String, Reflect: true})
	return cls
}()

func ExampleDefine() {
	q := frame.NewQueue()
	doc := memdom.New(q)
	if err := element.Define(doc, greetingClass, element.Options{Tag: "x-greeting"}); err != nil {
		panic(err)
	}

	el := doc.CreateElement("x-greeting")
	_ = doc.Connect(el)
	fmt.Println(el.Shadow().Content())

	el.SetAttribute("name", "Gopher")
	q.Flush()
	fmt.Println(el.Shadow().Content())

	_ = element.HostOf(el).Set("name", "Drift")
	q.Flush()
	name, _ := el.GetAttribute("name")
	fmt.Println(el.Shadow().Content(), name)
	// Output:
	// <p>Hello, World!</p>
	// <p>Hello, Gopher!</p>
	// <p>Hello, Drift!</p> Drift
}
