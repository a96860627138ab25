package element

import (
	stderrors "errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/metrics"
	"github.com/go-drift/elements/pkg/platform"
	"github.com/go-drift/elements/pkg/platform/memdom"
	"github.com/go-drift/elements/pkg/render"
)

type label struct {
	core.Base
	text    string
	note    string
	initial float64
	open    bool
	secret  int
	count   *core.State[int]
}

func (l *label) Render() render.Content {
	return render.HTML("<b>%s</b>", l.text)
}

var constructed int

var labelClass = func() *Class[*label] {
	cls := NewClass(func(ctrl *core.Controller) *label {
		constructed++
		l := &label{Base: core.NewBase(ctrl)}
		l.count = core.NewState(l, "count", 0)
		return l
	})
	Prop(cls, "label", func(l *label) *string { return &l.text }, PropConfig{Attr: convert.String, Reflect: true})
	Prop(cls, "note", func(l *label) *string { return &l.note }, PropConfig{Attr: convert.String})
	Prop(cls, "initialCount", func(l *label) *float64 { return &l.initial }, PropConfig{Attr: convert.Number, Reflect: true})
	Prop(cls, "isOpen", func(l *label) *bool { return &l.open }, PropConfig{Attr: convert.Boolean})
	Prop(cls, "secret", func(l *label) *int { return &l.secret }, PropConfig{})
	StateField(cls, "count")
	Method(cls, "shout", func(l *label, args ...any) (any, error) {
		return strings.ToUpper(l.text), nil
	})
	Method(cls, "increment", func(l *label, args ...any) (any, error) {
		l.count.Update(func(n int) int { return n + 1 })
		return l.count.Get(), nil
	})
	return cls
}()

// mismatch binds a string attribute to an int field.
type mismatch struct {
	core.Base
	size int
}

var mismatchClass = func() *Class[*mismatch] {
	cls := NewClass(func(ctrl *core.Controller) *mismatch { return &mismatch{Base: core.NewBase(ctrl)} })
	Prop(cls, "size", func(m *mismatch) *int { return &m.size }, PropConfig{Attr: convert.String})
	return cls
}()

func newDocument(t *testing.T, opts Options) (*memdom.Document, *frame.Queue) {
	t.Helper()
	q := frame.NewQueue()
	d := memdom.New(q)
	if err := Define(d, labelClass, opts); err != nil {
		t.Fatalf("Define: %v", err)
	}
	return d, q
}

func get(t *testing.T, h *Host, name string) any {
	t.Helper()
	v, err := h.Get(name)
	if err != nil {
		t.Fatalf("Get(%s): %v", name, err)
	}
	return v
}

func TestHost_LabelBeforeConnect(t *testing.T) {
	d, q := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label", memdom.Attr{Name: "label", Value: "Hi"})
	h := HostOf(el)
	if h == nil {
		t.Fatal("element was not upgraded")
	}

	if got := get(t, h, "label"); got != "Hi" {
		t.Errorf("label = %v, want Hi", got)
	}
	if err := h.Set("label", "Bye"); err != nil {
		t.Fatal(err)
	}
	if v, _ := el.GetAttribute("label"); v != "Bye" {
		t.Errorf("reflected attribute = %q, want Bye", v)
	}
	if h.Controller().RenderCount() != 0 || q.Pending() != 0 {
		t.Error("an unmounted element must not render")
	}

	if err := d.Connect(el); err != nil {
		t.Fatal(err)
	}
	if got := el.Shadow().Content(); got != "<b>Bye</b>" {
		t.Errorf("shadow content = %q", got)
	}
}

func TestHost_AttributeChangeRefreshes(t *testing.T) {
	d, q := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label")
	_ = d.Connect(el)

	el.SetAttribute("label", "A")
	el.SetAttribute("label", "B")

	if q.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", q.Pending())
	}
	q.Flush()
	if got := el.Shadow().Content(); got != "<b>B</b>" {
		t.Errorf("shadow content = %q", got)
	}
	if v, _ := el.GetAttribute("label"); v != "B" {
		t.Errorf("attribute = %q", v)
	}
}

func TestHost_NonReflectingProperty(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label")
	h := HostOf(el)

	_ = h.Set("note", "private")
	if _, ok := el.GetAttribute("note"); ok {
		t.Error("non-reflecting property must not write its attribute")
	}
	el.SetAttribute("note", "public")
	if got := get(t, h, "note"); got != "public" {
		t.Errorf("note = %v, want public", got)
	}

	_ = h.Set("secret", 7)
	if got := get(t, h, "secret"); got != 7 {
		t.Errorf("secret = %v", got)
	}
}

func TestHost_NumberProperty(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label", memdom.Attr{Name: "initial-count", Value: "12px"})
	h := HostOf(el)

	if got := get(t, h, "initialCount"); got != 12.0 {
		t.Errorf("initialCount = %v, want 12", got)
	}
	el.SetAttribute("initial-count", "abc")
	if got := get(t, h, "initialCount").(float64); !math.IsNaN(got) {
		t.Errorf("initialCount = %v, want NaN", got)
	}

	if err := h.Set("initialCount", 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := el.GetAttribute("initial-count"); v != "3" {
		t.Errorf("attribute = %q, want 3", v)
	}
	if err := h.Set("initialCount", "x"); err == nil {
		t.Error("Set with a string should fail for a number property")
	}
}

func TestHost_BooleanAttribute(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label")
	h := HostOf(el)

	tests := []struct {
		value   string
		present bool
		want    bool
	}{
		{"true", true, true},
		{"", true, true},
		{"false", true, false},
		{"yes", true, false},
		{"TRUE", true, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if tt.present {
			el.SetAttribute("is-open", tt.value)
		} else {
			el.RemoveAttribute("is-open")
		}
		if got := get(t, h, "isOpen"); got != tt.want {
			t.Errorf("is-open=%q present=%v: isOpen = %v, want %v", tt.value, tt.present, got, tt.want)
		}
	}
}

func TestHost_ObservedAttributes(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label"})
	h := HostOf(d.CreateElement("x-label"))
	want := []string{"label", "note", "initial-count", "is-open"}
	if got := h.Metadata().ObservedAttributes(); !slices.Equal(got, want) {
		t.Errorf("ObservedAttributes() = %v, want %v", got, want)
	}
	if !h.Metadata().Sealed() {
		t.Error("defined class should be sealed")
	}
}

func TestHost_ConversionMismatchReported(t *testing.T) {
	d := memdom.New(nil)
	if err := Define(d, mismatchClass, Options{Tag: "x-mismatch"}); err != nil {
		t.Fatal(err)
	}
	var reported []*errors.ElementError
	old := errors.SetHandler(handlerFunc(func(err *errors.ElementError) { reported = append(reported, err) }))
	defer errors.SetHandler(old)
	before := testutil.ToFloat64(metrics.ConversionErrors.WithLabelValues("x-mismatch"))

	el := d.CreateElement("x-mismatch", memdom.Attr{Name: "size", Value: "large"})

	if len(reported) != 1 || reported[0].Kind != errors.KindConversion {
		t.Fatalf("reported = %v, want one conversion error", reported)
	}
	var cerr *errors.ConversionError
	if !stderrors.As(reported[0], &cerr) || cerr.Attribute != "size" || cerr.Want != "int" {
		t.Errorf("conversion error = %+v", cerr)
	}
	if v, _ := HostOf(el).Get("size"); v != 0 {
		t.Errorf("size = %v, mismatched value must be dropped", v)
	}
	if got := testutil.ToFloat64(metrics.ConversionErrors.WithLabelValues("x-mismatch")); got != before+1 {
		t.Errorf("conversion errors counter = %v, want %v", got, before+1)
	}
}

func TestHost_CallAndUnknownNames(t *testing.T) {
	d, q := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label", memdom.Attr{Name: "label", Value: "hey"})
	h := HostOf(el)
	_ = d.Connect(el)

	out, err := h.Call("shout")
	if err != nil || out != "HEY" {
		t.Errorf("Call(shout) = %v, %v", out, err)
	}
	for range 3 {
		_, _ = h.Call("increment")
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, three increments should schedule one frame", q.Pending())
	}
	q.Flush()
	if h.Controller().RenderCount() != 2 {
		t.Errorf("RenderCount() = %d, want 2", h.Controller().RenderCount())
	}
	if v, _ := h.Controller().Field("count"); v != 3 {
		t.Errorf("count = %v, want 3", v)
	}

	if _, err := h.Call("missing"); err == nil {
		t.Error("Call(missing) should fail")
	}
	if _, err := h.Get("missing"); err == nil {
		t.Error("Get(missing) should fail")
	}
	if err := h.Set("missing", 1); err == nil {
		t.Error("Set(missing) should fail")
	}
}

func TestHost_ConnectDisconnect(t *testing.T) {
	d, q := newDocument(t, Options{Tag: "x-label"})
	el := d.CreateElement("x-label", memdom.Attr{Name: "label", Value: "on"})
	h := HostOf(el)

	_ = d.Connect(el)
	if !h.Controller().IsMounted() {
		t.Fatal("connect should mount")
	}
	_ = h.Set("label", "later")
	d.Disconnect(el)
	if h.Controller().IsMounted() || el.Shadow().Content() != "" {
		t.Error("disconnect should unmount and clear")
	}
	q.Flush()
	if el.Shadow().Content() != "" {
		t.Error("a frame after disconnect must not render")
	}
}

func TestDefine_DuplicateTagReloads(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label"})
	start := constructed
	before := testutil.ToFloat64(metrics.Reloads)

	if err := Define(d, labelClass, Options{Tag: "x-label"}); err != nil {
		t.Fatalf("duplicate Define returned %v, want nil", err)
	}

	if d.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", d.Reloads())
	}
	if constructed != start {
		t.Error("duplicate definition must not construct elements")
	}
	if got := testutil.ToFloat64(metrics.Reloads); got != before+1 {
		t.Errorf("reloads counter = %v, want %v", got, before+1)
	}
}

func TestDefine_InvalidTag(t *testing.T) {
	for _, tag := range []string{"", "label", "X-Label", "-x", "1-x", "x label"} {
		err := Define(memdom.New(nil), labelClass, Options{Tag: tag})
		var elErr *errors.ElementError
		if !stderrors.As(err, &elErr) || elErr.Kind != errors.KindDefine {
			t.Errorf("Define(%q) = %v, want define error", tag, err)
		}
	}
}

func TestDefine_UpgradesExistingElements(t *testing.T) {
	d := memdom.New(nil)
	el := d.CreateElement("x-late", memdom.Attr{Name: "label", Value: "early"})
	_ = d.Connect(el)

	if err := Define(d, labelClass, Options{Tag: "x-late"}); err != nil {
		t.Fatal(err)
	}

	if got := el.Shadow().Content(); got != "<b>early</b>" {
		t.Errorf("shadow content = %q", got)
	}
}

func TestDefine_Styles(t *testing.T) {
	d, _ := newDocument(t, Options{Tag: "x-label", Styles: []string{"b { color: red }", "i { margin: 0 }"}})
	el := d.CreateElement("x-label", memdom.Attr{Name: "label", Value: "hi"})
	_ = d.Connect(el)

	want := "<style>b { color: red }" + StyleSeparator + "i { margin: 0 }</style><span><b>hi</b></span>"
	if got := el.Shadow().Content(); got != want {
		t.Errorf("shadow content = %q, want %q", got, want)
	}

	d.Disconnect(el)
	if got := el.Shadow().Content(); !strings.HasPrefix(got, "<style>") || !strings.HasSuffix(got, "<span></span>") {
		t.Errorf("unmount should clear only the container, got %q", got)
	}
}

func TestDefine_CustomRenderer(t *testing.T) {
	var seen []render.Content
	rec := render.RendererFunc(func(c render.Container, content render.Content) error {
		seen = append(seen, content)
		return render.Markup{}.Render(c, content)
	})
	d, _ := newDocument(t, Options{Tag: "x-label", Renderer: rec})
	el := d.CreateElement("x-label")
	_ = d.Connect(el)
	if len(seen) != 1 {
		t.Errorf("renderer calls = %d, want 1", len(seen))
	}
}

// badge reflects its level through a custom converter that drops zero.
type badge struct {
	core.Base
	level int
}

var badgeClass = func() *Class[*badge] {
	cls := NewClass(func(ctrl *core.Controller) *badge { return &badge{Base: core.NewBase(ctrl)} })
	level := convert.Func(
		func(n int) (string, bool) {
			if n == 0 {
				return "", false
			}
			return strconv.Itoa(n), true
		},
		func(attr string, present bool) int {
			n, _ := strconv.Atoi(attr)
			return n
		})
	Prop(cls, "level", func(b *badge) *int { return &b.level }, PropConfig{Attr: level, Reflect: true})
	return cls
}()

func TestHost_ReflectRemovesAttribute(t *testing.T) {
	d := memdom.New(frame.NewQueue())
	if err := Define(d, badgeClass, Options{Tag: "x-badge"}); err != nil {
		t.Fatal(err)
	}
	el := d.CreateElement("x-badge")
	h := HostOf(el)

	if err := h.Set("level", 5); err != nil {
		t.Fatal(err)
	}
	if v, ok := el.GetAttribute("level"); !ok || v != "5" {
		t.Errorf("attribute = %q, %v; want \"5\", true", v, ok)
	}

	if err := h.Set("level", 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := el.GetAttribute("level"); ok {
		t.Error("converter returned no value, attribute should be removed")
	}
	if got := get(t, h, "level"); got != 0 {
		t.Errorf("level = %v, want 0", got)
	}
}

// undeclaredState creates a state field its class never declares.
type undeclaredState struct {
	core.Base
}

var undeclaredStateClass = func() *Class[*undeclaredState] {
	return NewClass(func(ctrl *core.Controller) *undeclaredState {
		c := &undeclaredState{Base: core.NewBase(ctrl)}
		core.NewState(c, "extra", 0)
		return c
	})
}()

// missingState declares a state field it never creates.
type missingState struct {
	core.Base
}

var missingStateClass = func() *Class[*missingState] {
	cls := NewClass(func(ctrl *core.Controller) *missingState { return &missingState{Base: core.NewBase(ctrl)} })
	StateField(cls, "count")
	return cls
}()

func expectViolation(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		var violation *errors.ProtocolViolation
		if !ok || !stderrors.As(err, &violation) {
			t.Fatalf("expected *errors.ProtocolViolation panic, got %v", r)
		}
		if !strings.Contains(violation.Reason, want) {
			t.Errorf("reason = %q, want it to mention %q", violation.Reason, want)
		}
	}()
	fn()
}

func TestDefine_StateFieldsMustMatch(t *testing.T) {
	d := memdom.New(frame.NewQueue())
	if err := Define(d, undeclaredStateClass, Options{Tag: "x-undeclared"}); err != nil {
		t.Fatal(err)
	}
	if err := Define(d, missingStateClass, Options{Tag: "x-missing"}); err != nil {
		t.Fatal(err)
	}

	expectViolation(t, `"extra"`, func() { d.CreateElement("x-undeclared") })
	expectViolation(t, `"count"`, func() { d.CreateElement("x-missing") })

	// Declared and created fields agree.
	d2, _ := newDocument(t, Options{Tag: "x-label"})
	el := d2.CreateElement("x-label")
	if got := HostOf(el).Controller().FieldNames(); !slices.Equal(got, []string{"count"}) {
		t.Errorf("FieldNames() = %v, want [count]", got)
	}
}

// rejecting refuses every definition.
type rejecting struct {
	*memdom.Document
}

func (rejecting) Define(platform.Definition) error {
	return stderrors.New("registry closed")
}

func TestDefine_PlatformErrorNotCounted(t *testing.T) {
	before := testutil.ToFloat64(metrics.ElementsDefined)

	err := Define(rejecting{memdom.New(nil)}, labelClass, Options{Tag: "x-rejected"})

	var elErr *errors.ElementError
	if !stderrors.As(err, &elErr) || elErr.Kind != errors.KindDefine {
		t.Fatalf("Define = %v, want define error", err)
	}
	if got := testutil.ToFloat64(metrics.ElementsDefined); got != before {
		t.Errorf("defined counter = %v, want %v", got, before)
	}
}

type handlerFunc func(*errors.ElementError)

func (f handlerFunc) HandleError(err *errors.ElementError) { f(err) }
func (handlerFunc) HandlePanic(*errors.PanicError)         {}
