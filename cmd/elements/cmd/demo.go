package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/elements/cmd/elements/internal/demos"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/platform/memdom"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the demo elements headless",
		Long: `Run the demo elements on an in-memory document driven by a frame loop.

Creates a simple-counter-demo with two simple-counter elements and a
clock-demo, clicks the first counter periodically and prints the rendered
shadow markup of every element when the run ends.

Flags:
  --duration D       How long to run (default: 3s)
  --click D          Interval between clicks on the first counter (default: 250ms)
  --metrics          Serve Prometheus metrics while running
  --metrics-addr A   Metrics listen address (default: metrics.addr from config)

Examples:
  elements demo
  elements demo --duration 10s --metrics`,
		Usage: "elements demo [--duration D] [--click D] [--metrics] [--metrics-addr A]",
		Run:   runDemo,
	})
}

type demoOptions struct {
	duration    time.Duration
	click       time.Duration
	metrics     bool
	metricsAddr string
}

func parseDemoArgs(args []string) (demoOptions, error) {
	opts := demoOptions{
		duration:    3 * time.Second,
		click:       250 * time.Millisecond,
		metrics:     cfg.Metrics.Enabled,
		metricsAddr: cfg.Metrics.Addr,
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--metrics":
			opts.metrics = true
		case "--duration", "--click", "--metrics-addr":
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			i++
			if arg == "--metrics-addr" {
				opts.metricsAddr = args[i]
				opts.metrics = true
				continue
			}
			d, err := time.ParseDuration(args[i])
			if err != nil || d <= 0 {
				return opts, fmt.Errorf("%s: invalid duration %q", arg, args[i])
			}
			if arg == "--duration" {
				opts.duration = d
			} else {
				opts.click = d
			}
		default:
			return opts, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

func runDemo(args []string) error {
	opts, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	return demo(ctx, frame.NewLoop(frame.WithInterval(cfg.Frame.Interval)), opts)
}

// demo runs the demo document on loop until ctx is done.
func demo(ctx context.Context, loop *frame.Loop, opts demoOptions) error {
	doc := memdom.New(loop)
	if err := demos.Define(doc); err != nil {
		return err
	}

	// Elements are created before the loop starts, so no dispatch is needed.
	page := doc.CreateElement(demos.SimpleCounterDemoTag)
	first := doc.CreateElement(demos.SimpleCounterTag, memdom.Attr{Name: "label", Value: "Counter 1"})
	second := doc.CreateElement(demos.SimpleCounterTag,
		memdom.Attr{Name: "initial-count", Value: "100"},
		memdom.Attr{Name: "label", Value: "Counter 2 (starting with 100)"})
	clock := doc.CreateElement(demos.ClockDemoTag)
	elements := []*memdom.Element{page, first, second, clock}
	for _, el := range elements {
		if err := doc.Connect(el); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreDone(loop.Run(ctx))
	})
	g.Go(func() error {
		ticker := demos.Clock.NewTicker(opts.click)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C():
				loop.Dispatch(func() {
					if _, err := element.HostOf(first).Call("increment"); err != nil {
						zap.S().Warnw("click failed", "err", err)
					}
				})
			}
		}
	})
	if opts.metrics {
		srv := newMetricsServer(opts.metricsAddr)
		g.Go(func() error {
			zap.S().Infow("serving metrics", "addr", opts.metricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()

	// The loop has stopped; the document belongs to this goroutine again.
	for _, el := range elements {
		fmt.Fprintf(stdout, "<%s>%s</%s>\n", el.TagName(), singleLine(el.Shadow().Content()), el.TagName())
	}
	for _, el := range elements {
		doc.Disconnect(el)
	}
	zap.S().Infow("demo finished", "frames", loop.Frames(), "clicks", element.HostOf(first).Component().(*demos.SimpleCounter).Count())
	return err
}

func newMetricsServer(addr string) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
}

// singleLine escapes line breaks so each element prints on one line.
func singleLine(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}

func ignoreDone(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
