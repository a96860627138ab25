package testing

import (
	"testing"

	"github.com/go-drift/elements/pkg/platform/memdom"
)

func TestFinders(t *testing.T) {
	tester := newCounterTester(t)
	first, _ := tester.Mount("x-counter", memdom.Attr{Name: "initial-count", Value: "1"})
	tester.Mount("x-counter", memdom.Attr{Name: "initial-count", Value: "2"})
	detached := tester.Create("x-counter")

	if n := tester.Find(ByTag("x-counter")).Count(); n != 3 {
		t.Errorf("ByTag count = %d, want 3", n)
	}
	if got := tester.Find(ByAttribute("initial-count", "1")).First(); got != first {
		t.Error("ByAttribute should find the first counter")
	}
	if n := tester.Find(ByContent("<button>2</button>")).Count(); n != 1 {
		t.Errorf("ByContent count = %d, want 1", n)
	}
	if n := tester.Find(Connected()).Count(); n != 2 {
		t.Errorf("Connected count = %d, want 2", n)
	}
	if tester.Find(ByTag("x-missing")).Exists() {
		t.Error("should not find x-missing")
	}
	if tester.Find(ByTag("x-missing")).FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil")
	}
	if tester.Find(ByTag("x-counter")).At(2) != detached {
		t.Error("At(2) should be the detached counter")
	}
	if h := tester.Find(ByAttribute("initial-count", "2")).Host(); h == nil {
		t.Error("Host() should return the element host")
	}
}

func TestFinderResult_FirstPanics(t *testing.T) {
	tester := NewTesterWithT(t)
	defer func() {
		if recover() == nil {
			t.Error("First() on an empty result should panic")
		}
	}()
	tester.Find(ByTag("x-none")).First()
}
