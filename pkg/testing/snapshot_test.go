package testing

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/elements/pkg/platform/memdom"
)

type fakeT struct {
	fatals []string
	errs   []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}
func (f *fakeT) Errorf(format string, args ...any) {
	f.errs = append(f.errs, fmt.Sprintf(format, args...))
}

func TestCaptureSnapshot(t *testing.T) {
	tester := newCounterTester(t)
	el, _ := tester.Mount("x-counter", memdom.Attr{Name: "initial-count", Value: "4"})

	snap := tester.CaptureSnapshot(el)

	want := &Snapshot{
		Tag:        "x-counter",
		Attributes: map[string]string{"initial-count": "4"},
		Connected:  true,
		Mounted:    true,
		Renders:    1,
		Shadow:     "<button>4</button>",
	}
	if diff := snap.Diff(want); diff != "" {
		t.Errorf("snapshot differs:\n%s", diff)
	}
}

func TestSnapshot_MatchesFile(t *testing.T) {
	tester := newCounterTester(t)
	el, _ := tester.Mount("x-counter")
	path := filepath.Join(t.TempDir(), "testdata", "counter.snapshot.yaml")

	if err := tester.CaptureSnapshot(el).UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	tester.CaptureSnapshot(el).MatchesFile(t, path)

	_, _ = tester.Host(el).Call("increment")
	tester.Pump()
	ft := &fakeT{}
	tester.CaptureSnapshot(el).MatchesFile(ft, path)
	if len(ft.errs) != 1 || !strings.Contains(ft.errs[0], "<button>1</button>") {
		t.Errorf("expected a mismatch diff, got %q", ft.errs)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	ft := &fakeT{}
	(&Snapshot{Tag: "x-none"}).MatchesFile(ft, filepath.Join(t.TempDir(), "missing.yaml"))
	if len(ft.fatals) != 1 || !strings.Contains(ft.fatals[0], UpdateSnapshotsEnv) {
		t.Errorf("fatals = %q", ft.fatals)
	}
}
