package element

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/meta"
	"github.com/go-drift/elements/pkg/metrics"
	"github.com/go-drift/elements/pkg/platform"
	"github.com/go-drift/elements/pkg/render"
)

// StyleSeparator joins the style sheets of a definition.
const StyleSeparator = "\n\n============\n\n"

var tagPattern = regexp.MustCompile(`^[a-z][a-z0-9._]*-[a-z0-9._-]*$`)

// Options configures Define.
type Options struct {
	// Tag is the custom element name. It must be lower case and contain a
	// hyphen.
	Tag string
	// Styles are injected into every element's shadow root.
	Styles []string
	// Uses lists tags rendered by this element. Define warns about tags that
	// are not defined yet.
	Uses []string
	// Renderer patches the element content. Defaults to render.Markup.
	Renderer render.Renderer
}

// definition is the per-tag state shared by every instance.
type definition struct {
	tag      string
	cls      class
	meta     *meta.ClassMetadata
	css      string
	platform platform.Platform
	renderer render.Renderer
}

// Define seals cls and registers it on p under opts.Tag.
//
// Redefining a tag that p already knows is not an error: the platform is
// reloaded once and no element is constructed.
func Define[C core.Component](p platform.Platform, cls *Class[C], opts Options) error {
	if !tagPattern.MatchString(opts.Tag) {
		return &errors.ElementError{
			Op:   "element.Define",
			Kind: errors.KindDefine,
			Tag:  opts.Tag,
			Err:  fmt.Errorf("invalid custom element name %q", opts.Tag),
		}
	}
	if p.IsDefined(opts.Tag) {
		reload(p, opts.Tag)
		return nil
	}

	md := cls.registry.Seal(cls.key)
	def := &definition{
		tag:      opts.Tag,
		cls:      cls,
		meta:     md,
		css:      strings.Join(opts.Styles, StyleSeparator),
		platform: p,
		renderer: opts.Renderer,
	}

	for _, used := range opts.Uses {
		if !p.IsDefined(used) {
			zap.S().Warnw("element uses an undefined tag", "tag", opts.Tag, "uses", used)
		}
	}

	err := p.Define(platform.Definition{
		Tag:                opts.Tag,
		ObservedAttributes: md.ObservedAttributes(),
		Construct:          def.construct,
	})
	if stderrors.Is(err, platform.ErrAlreadyDefined) {
		reload(p, opts.Tag)
		return nil
	}
	if err != nil {
		return &errors.ElementError{
			Op:   "element.Define",
			Kind: errors.KindDefine,
			Tag:  opts.Tag,
			Err:  err,
		}
	}
	metrics.ElementsDefined.Inc()
	zap.S().Debugw("element defined", "tag", opts.Tag, "class", cls.key, "observed", md.ObservedAttributes())
	return nil
}

func reload(p platform.Platform, tag string) {
	zap.S().Warnw("custom element already defined, reloading", "tag", tag)
	metrics.Reloads.Inc()
	p.Reload()
}

// checkFields panics with *errors.ProtocolViolation unless the state fields
// created by the component are exactly the ones declared with StateField.
func (d *definition) checkFields(ctrl *core.Controller) {
	created := ctrl.FieldNames()
	for _, f := range d.meta.Fields() {
		if !slices.Contains(created, f.Name) {
			panic(&errors.ProtocolViolation{
				Op:     "element.construct",
				Reason: fmt.Sprintf("%s: declared state field %q was not created with core.NewState", d.tag, f.Name),
			})
		}
	}
	for _, name := range created {
		if !slices.ContainsFunc(d.meta.Fields(), func(f meta.FieldDescriptor) bool { return f.Name == name }) {
			panic(&errors.ProtocolViolation{
				Op:     "element.construct",
				Reason: fmt.Sprintf("%s: state field %q is not declared with element.StateField", d.tag, name),
			})
		}
	}
}

func (d *definition) construct(el platform.Element) platform.Callbacks {
	shadow := el.AttachShadow()
	var container render.Container = shadow
	if d.css != "" {
		shadow.AppendStyle(d.css)
		container = shadow.AppendContainer()
	}

	h := &Host{el: el, def: d}
	h.ctrl = core.NewController(core.Config{
		Tag:       d.tag,
		Host:      h,
		Scheduler: d.platform,
		Renderer:  d.renderer,
		Container: container,
	})
	h.comp = d.cls.construct(h.ctrl)
	d.checkFields(h.ctrl)
	h.comp.Init()
	return h
}
