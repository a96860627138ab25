// Package testing provides a harness for testing custom elements headlessly.
//
// # Quick Start
//
// Define your class on the tester's document, create an element and make
// assertions on its shadow tree:
//
//	func TestCounter(t *testing.T) {
//	    tester := elementtest.NewTesterWithT(t)
//	    if err := element.Define(tester.Document(), counterClass, element.Options{Tag: "x-counter"}); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    el, _ := tester.Mount("x-counter", memdom.Attr{Name: "initial-count", Value: "3"})
//	    tester.Host(el).Call("increment")
//	    tester.Pump()
//
//	    if !tester.Find(elementtest.ByContent("<button>4</button>")).Exists() {
//	        t.Error("expected the incremented count")
//	    }
//	}
//
// Frames only run when the test pumps them, so coalescing is observable:
// any number of refreshes between two pumps produce one render.
//
// # Snapshot Testing
//
// Capture and compare an element's attributes and shadow markup:
//
//	tester.CaptureSnapshot(el).MatchesFile(t, "testdata/counter.snapshot.yaml")
//
// Update snapshots with:
//
//	ELEMENTS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Timers
//
// Components built on core.UseTimer take a clockz.Clock. Pass the tester's
// fake clock and move time with Tick.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import elementtest "github.com/go-drift/elements/pkg/testing"
package testing
